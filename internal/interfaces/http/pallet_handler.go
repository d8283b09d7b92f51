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

// PalletHandler histórico de movimentações de paletes.
type PalletHandler struct {
	muts *mutation.Service
	pdf  *pdf.ReportGenerator
}

// NewPalletHandler constrói o handler.
func NewPalletHandler(muts *mutation.Service, gen *pdf.ReportGenerator) *PalletHandler {
	return &PalletHandler{muts: muts, pdf: gen}
}

// List godoc
// @Summary      Listar movimentações de paletes
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "data inicial YYYY-MM-DD"
// @Param        endDate    query  string  false  "data final YYYY-MM-DD"
// @Param        operation  query  string  false  "operação ou ALL"
// @Param        client     query  string  false  "busca parcial por cliente"
// @Param        profile    query  string  false  "perfil ou ALL"
// @Success      200  {array}  entity.PalletTransaction
// @Router       /api/pallets [get]
func (h *PalletHandler) List(c *fiber.Ctx) error {
	var f filter.PalletFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(f.Apply(h.muts.Pallets()))
}

// Create godoc
// @Summary      Registrar movimentação de paletes
// @Tags         pallets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.PalletTransaction  true  "movimentação (month e duration são derivados)"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/pallets [post]
func (h *PalletHandler) Create(c *fiber.Ctx) error {
	var in entity.PalletTransaction
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	created, res, err := h.muts.CreatePallet(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created, "result": res})
}

// Update godoc
// @Summary      Editar movimentação de paletes (mês e duração não são regerados)
// @Tags         pallets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id da movimentação"
// @Param        body  body  entity.PalletTransaction  true  "movimentação"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pallets/{id} [put]
func (h *PalletHandler) Update(c *fiber.Ctx) error {
	var in entity.PalletTransaction
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	updated, res, err := h.muts.UpdatePallet(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": updated, "result": res})
}

// Delete godoc
// @Summary      Excluir movimentação de paletes
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "id da movimentação"
// @Param        confirm  query  bool    true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pallets/{id} [delete]
func (h *PalletHandler) Delete(c *fiber.Ctx) error {
	res, err := h.muts.DeletePallet(c.Context(), GetActor(c), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Clear godoc
// @Summary      Apagar todo o histórico de paletes
// @Tags         pallets
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pallets [delete]
func (h *PalletHandler) Clear(c *fiber.Ctx) error {
	res, err := h.muts.ClearPallets(c.Context(), GetActor(c), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Export godoc
// @Summary      Exportar o histórico de paletes (CSV, XML ou PDF)
// @Tags         pallets
// @Security     Bearer
// @Param        format  query  string  false  "csv (default), xml ou pdf"
// @Router       /api/pallets/export [get]
func (h *PalletHandler) Export(c *fiber.Ctx) error {
	var f filter.PalletFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	table := export.PalletTable(f.Apply(h.muts.Pallets()))
	return sendTable(c, h.pdf, table)
}
