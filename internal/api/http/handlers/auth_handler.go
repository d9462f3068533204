package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stuffshop/backend/internal/api/dto"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/service"
)

// AuthHandler exposes sign-up and sign-in endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return problem.NewMalformedBody(err)
	}
	if fields := req.Validate(); len(fields) > 0 {
		return problem.NewValidation(fields...)
	}

	user, token, exp, err := h.auth.SignUp(c.UserContext(), req.Username, req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "you signed up successfully", fiber.Map{
		"user": dto.FromUser(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return problem.NewMalformedBody(err)
	}
	if fields := req.Validate(); len(fields) > 0 {
		return problem.NewValidation(fields...)
	}

	user, token, exp, err := h.auth.SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "you signed in successfully", fiber.Map{
		"user": dto.FromUser(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}
