package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/application/export"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/filter"
	"github.com/logmam/logmam-api/internal/infrastructure/pdf"
)

// TransactionHandler histórico de movimentações de filme stretch.
type TransactionHandler struct {
	muts *mutation.Service
	pdf  *pdf.ReportGenerator
}

// NewTransactionHandler constrói o handler.
func NewTransactionHandler(muts *mutation.Service, gen *pdf.ReportGenerator) *TransactionHandler {
	return &TransactionHandler{muts: muts, pdf: gen}
}

// List godoc
// @Summary      Listar movimentações de filme stretch (ordem cronológica)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "data inicial YYYY-MM-DD"
// @Param        endDate    query  string  false  "data final YYYY-MM-DD"
// @Param        operation  query  string  false  "operação ou ALL"
// @Param        conferente query  string  false  "busca parcial por conferente"
// @Success      200  {array}  entity.Transaction
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var f filter.TransactionFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(f.Apply(h.muts.Transactions()))
}

// Create godoc
// @Summary      Registrar movimentação de filme stretch
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Transaction  true  "movimentação (saldo e unitKg são recalculados)"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in entity.Transaction
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	created, res, err := h.muts.CreateTransaction(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created, "result": res})
}

// Update godoc
// @Summary      Editar movimentação de filme stretch
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "id da movimentação"
// @Param        body  body  entity.Transaction  true  "movimentação"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in entity.Transaction
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	updated, res, err := h.muts.UpdateTransaction(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": updated, "result": res})
}

// Delete godoc
// @Summary      Excluir movimentação de filme stretch
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "id da movimentação"
// @Param        confirm  query  bool    true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	res, err := h.muts.DeleteTransaction(c.Context(), GetActor(c), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Clear godoc
// @Summary      Apagar todo o histórico de filme stretch
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [delete]
func (h *TransactionHandler) Clear(c *fiber.Ctx) error {
	res, err := h.muts.ClearTransactions(c.Context(), GetActor(c), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Export godoc
// @Summary      Exportar o histórico de filme stretch (CSV, XML ou PDF)
// @Tags         transactions
// @Security     Bearer
// @Param        format  query  string  false  "csv (default), xml ou pdf"
// @Router       /api/transactions/export [get]
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	var f filter.TransactionFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	table := export.TransactionTable(f.Apply(h.muts.Transactions()))
	return sendTable(c, h.pdf, table)
}
