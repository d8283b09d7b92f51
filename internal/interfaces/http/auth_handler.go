package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/auth"
	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/domain/filter"
	"github.com/logmam/logmam-api/internal/domain/view"
)

// AuthHandler login e modo de compartilhamento.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary      Autenticar por nome e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "name, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name e password são obrigatórios"})
	}
	sess, err := h.svc.Login(in.Name, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionResponse{Token: sess.Token, User: sess.User})
}

// EnterShare godoc
// @Summary      Entrar no modo de visualização por link de compartilhamento
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShareEnterRequest  true  "share_id, view e filtros do link"
// @Success      200   {object}  auth.ShareEntry
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/share/enter [post]
func (h *AuthHandler) EnterShare(c *fiber.Ctx) error {
	var in dto.ShareEnterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	tf := filter.TransactionFilters{
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Operation:  in.Operation,
		Conferente: in.Conferente,
	}
	pf := filter.PalletFilters{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Operation: in.Operation,
		Client:    in.Client,
		Profile:   in.Profile,
	}
	entry, err := h.svc.EnterShare(in.ShareID, in.View, tf, pf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

// ShareLink godoc
// @Summary      Montar link de compartilhamento da tela atual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        view       query  string  true   "tela de destino"
// @Param        startDate  query  string  false  "filtro de data inicial"
// @Param        endDate    query  string  false  "filtro de data final"
// @Param        operation  query  string  false  "filtro de operação"
// @Param        conferente query  string  false  "filtro de conferente (histórico de stretch)"
// @Param        client     query  string  false  "filtro de cliente (histórico de paletes)"
// @Param        profile    query  string  false  "filtro de perfil (histórico de paletes)"
// @Success      200  {object}  dto.ShareLinkResponse
// @Router       /api/share/link [get]
func (h *AuthHandler) ShareLink(c *fiber.Ctx) error {
	viewName := c.Query("view", view.Home)
	var tf filter.TransactionFilters
	var pf filter.PalletFilters
	if err := c.QueryParser(&tf); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if err := c.QueryParser(&pf); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.JSON(dto.ShareLinkResponse{URL: h.svc.BuildShareLink(viewName, tf, pf)})
}
