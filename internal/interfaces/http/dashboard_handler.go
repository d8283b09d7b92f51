package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/analytics"
	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/application/usecase"
	"github.com/logmam/logmam-api/internal/domain/filter"
)

// DashboardHandler visões agregadas, busca global e notificações.
type DashboardHandler struct {
	analytics *analytics.Service
	muts      *mutation.Service
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(svc *analytics.Service, muts *mutation.Service) *DashboardHandler {
	return &DashboardHandler{analytics: svc, muts: muts}
}

// Stretch godoc
// @Summary      Dashboard do estoque de filme stretch
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.StretchDashboard
// @Router       /api/dashboards/stretch [get]
func (h *DashboardHandler) Stretch(c *fiber.Ctx) error {
	var f filter.TransactionFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(h.analytics.Stretch(f))
}

// Pallets godoc
// @Summary      Dashboard de paletes (PBR, CHEP, quebras, circulação)
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.PalletDashboard
// @Router       /api/dashboards/pallets [get]
func (h *DashboardHandler) Pallets(c *fiber.Ctx) error {
	var f filter.PalletFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(h.analytics.Pallets(f))
}

// Ocorrencias godoc
// @Summary      Dashboard de ocorrências
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.OcorrenciaDashboard
// @Router       /api/dashboards/ocorrencias [get]
func (h *DashboardHandler) Ocorrencias(c *fiber.Ctx) error {
	var f filter.OcorrenciaFilters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(h.analytics.Ocorrencias(f))
}

// General godoc
// @Summary      Resumo geral (saldos das três áreas)
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.GeneralDashboard
// @Router       /api/dashboards/general [get]
func (h *DashboardHandler) General(c *fiber.Ctx) error {
	return c.JSON(h.analytics.General())
}

// Search godoc
// @Summary      Busca global (até 5 resultados por coleção)
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  true  "termo de busca"
// @Success      200  {object}  usecase.SearchResults
// @Router       /api/search [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	return c.JSON(usecase.Search(h.muts, c.Query("q")))
}

// Notifications godoc
// @Summary      Notificações recentes (mais recente primeiro)
// @Tags         dashboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /api/notifications [get]
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(dto.NotificationsResponse{Notifications: h.muts.Notifications()})
}
