package dto

import (
	"strings"
	"time"

	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
)

// SignUpRequest is the payload for new accounts.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate reports invalid fields in declaration order.
func (r SignUpRequest) Validate() []problem.FieldError {
	var fields []problem.FieldError
	if strings.TrimSpace(r.Username) == "" {
		fields = append(fields, problem.FieldError{Field: "username", Message: "must not be blank"})
	}
	switch {
	case strings.TrimSpace(r.Email) == "":
		fields = append(fields, problem.FieldError{Field: "email", Message: "must not be blank"})
	case !strings.Contains(r.Email, "@"):
		fields = append(fields, problem.FieldError{Field: "email", Message: "must be a well-formed email address"})
	}
	if strings.TrimSpace(r.Password) == "" {
		fields = append(fields, problem.FieldError{Field: "password", Message: "must not be blank"})
	}
	return fields
}

// SignInRequest is the payload for logins.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate reports invalid fields in declaration order.
func (r SignInRequest) Validate() []problem.FieldError {
	var fields []problem.FieldError
	if strings.TrimSpace(r.Username) == "" {
		fields = append(fields, problem.FieldError{Field: "username", Message: "must not be blank"})
	}
	if strings.TrimSpace(r.Password) == "" {
		fields = append(fields, problem.FieldError{Field: "password", Message: "must not be blank"})
	}
	return fields
}

// UserResponse is the account representation returned to clients.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromUser maps a domain user.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
	}
}
