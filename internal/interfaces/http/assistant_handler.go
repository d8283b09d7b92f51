package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/assistant"
	"github.com/logmam/logmam-api/internal/application/dto"
)

// AssistantHandler conversa com a Verônica.
type AssistantHandler struct {
	svc *assistant.Service
}

// NewAssistantHandler constrói o handler.
func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Chat godoc
// @Summary      Enviar mensagem para a assistente
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message"
// @Success      200   {object}  assistant.Answer
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "message é obrigatório"})
	}
	ans, err := h.svc.Chat(c.Context(), GetActor(c), in.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ans)
}
