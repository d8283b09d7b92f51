package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/pkg/jwt"
)

// Locals keys preenchidas pelo middleware de autenticação.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
	LocalUserRole = "user_role"
	LocalGuest    = "guest"
)

// AuthMiddleware valida o Bearer Token JWT e extrai identidade e flag de
// convidado para c.Locals. Sessões de convidado passam; quem bloqueia a
// escrita é a camada de aplicação.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserName, claims.Name)
		c.Locals(LocalUserRole, claims.Role)
		c.Locals(LocalGuest, claims.Guest)
		return c.Next()
	}
}

// GetActor devolve o ator da requisição (após o middleware de auth).
func GetActor(c *fiber.Ctx) mutation.Actor {
	actor := mutation.Actor{}
	if v, ok := c.Locals(LocalUserID).(string); ok {
		actor.UserID = v
	}
	if v, ok := c.Locals(LocalUserName).(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals(LocalGuest).(bool); ok {
		actor.Guest = v
	}
	return actor
}
