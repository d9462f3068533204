package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/repository"
)

// UserService exposes account lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByUsername resolves an account by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, problem.NewNotFound("user", fmt.Sprintf("user with username %s not found", username))
		}
		return nil, err
	}
	return user, nil
}
