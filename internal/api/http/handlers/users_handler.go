package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stuffshop/backend/internal/api/dto"
	"github.com/stuffshop/backend/internal/auth"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/service"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Me handles GET /users/me for the authenticated caller.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return problem.NewUnauthenticated("no authenticated principal")
	}
	return respond(c, http.StatusOK, "profile fetched", dto.FromUser(principal))
}

// Get handles GET /users/:username (admin only).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user fetched", dto.FromUser(user))
}
