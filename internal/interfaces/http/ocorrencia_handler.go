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

// OcorrenciaHandler histórico de ocorrências de entrega.
type OcorrenciaHandler struct {
	muts *mutation.Service
	pdf  *pdf.ReportGenerator
}

// NewOcorrenciaHandler constrói o handler.
func NewOcorrenciaHandler(muts *mutation.Service, gen *pdf.ReportGenerator) *OcorrenciaHandler {
	return &OcorrenciaHandler{muts: muts, pdf: gen}
}

// List godoc
// @Summary      Listar ocorrências
// @Tags         ocorrencias
// @Security     Bearer
// @Produce      json
// @Param        startDate       query  string  false  "data inicial YYYY-MM-DD"
// @Param        endDate         query  string  false  "data final YYYY-MM-DD"
// @Param        client          query  string  false  "busca parcial por cliente"
// @Param        plate           query  string  false  "busca parcial por placa"
// @Param        driver          query  string  false  "busca parcial por motorista"
// @Param        operation       query  string  false  "operação ou ALL"
// @Param        responsibility  query  string  false  "busca parcial por responsabilidade"
// @Param        status          query  string  false  "status ou ALL"
// @Success      200  {array}  entity.Ocorrencia
// @Router       /api/ocorrencias [get]
func (h *OcorrenciaHandler) List(c *fiber.Ctx) error {
	var f filter.OcorrenciaFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(f.Apply(h.muts.Ocorrencias()))
}

// Create godoc
// @Summary      Registrar ocorrência
// @Tags         ocorrencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Ocorrencia  true  "ocorrência (status vazio entra ABERTA)"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/ocorrencias [post]
func (h *OcorrenciaHandler) Create(c *fiber.Ctx) error {
	var in entity.Ocorrencia
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	created, res, err := h.muts.CreateOcorrencia(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created, "result": res})
}

// Update godoc
// @Summary      Editar ocorrência
// @Tags         ocorrencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id da ocorrência"
// @Param        body  body  entity.Ocorrencia  true  "ocorrência"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ocorrencias/{id} [put]
func (h *OcorrenciaHandler) Update(c *fiber.Ctx) error {
	var in entity.Ocorrencia
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	updated, res, err := h.muts.UpdateOcorrencia(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": updated, "result": res})
}

// Delete godoc
// @Summary      Excluir ocorrência
// @Tags         ocorrencias
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "id da ocorrência"
// @Param        confirm  query  bool    true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ocorrencias/{id} [delete]
func (h *OcorrenciaHandler) Delete(c *fiber.Ctx) error {
	res, err := h.muts.DeleteOcorrencia(c.Context(), GetActor(c), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Export godoc
// @Summary      Exportar o histórico de ocorrências (CSV, XML ou PDF)
// @Tags         ocorrencias
// @Security     Bearer
// @Param        format  query  string  false  "csv (default), xml ou pdf"
// @Router       /api/ocorrencias/export [get]
func (h *OcorrenciaHandler) Export(c *fiber.Ctx) error {
	var f filter.OcorrenciaFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	table := export.OcorrenciaTable(f.Apply(h.muts.Ocorrencias()))
	return sendTable(c, h.pdf, table)
}
