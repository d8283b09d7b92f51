package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/domain/entity"
)

// UserHandler contas do sistema.
type UserHandler struct {
	muts *mutation.Service
}

// NewUserHandler constrói o handler.
func NewUserHandler(muts *mutation.Service) *UserHandler {
	return &UserHandler{muts: muts}
}

// List godoc
// @Summary      Listar usuários (sem hash de senha)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.User
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users := h.muts.Users()
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Adicionar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserRequest  true  "name, role, password, profilePicture"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	created, res, err := h.muts.AddUser(c.Context(), GetActor(c), in.Name, in.Role, in.Password, in.ProfilePicture)
	if err != nil {
		return writeError(c, err)
	}
	created.PasswordHash = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created, "result": res})
}

// Update godoc
// @Summary      Editar usuário (senha vazia mantém a atual)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "id do usuário"
// @Param        body  body  dto.UserRequest  true  "campos a alterar"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	updated, res, err := h.muts.UpdateUser(c.Context(), GetActor(c), c.Params("id"), in.Name, in.Role, in.Password, in.ProfilePicture)
	if err != nil {
		return writeError(c, err)
	}
	updated.PasswordHash = ""
	return c.JSON(fiber.Map{"data": updated, "result": res})
}

// Delete godoc
// @Summary      Excluir usuário
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "id do usuário"
// @Param        confirm  query  bool    true  "confirmação explícita"
// @Success      200  {object}  mutation.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	res, err := h.muts.DeleteUser(c.Context(), GetActor(c), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
