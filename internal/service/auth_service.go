package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stuffshop/backend/internal/auth"
	"github.com/stuffshop/backend/internal/config"
	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/repository"
)

// AuthService coordinates sign-up and sign-in flows. Issued tokens embed the
// account's username and role; credentials are hashed through the pluggable
// hasher and never appear in tokens or error details.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	hasher auth.PasswordHasher
}

// NewAuthService builds the service from configuration.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		hasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	}
}

// TokenManager exposes the codec for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// SignUp creates a new USER account and issues its first token.
func (s *AuthService) SignUp(ctx context.Context, username, email, password, name string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, problem.NewConstraintViolation("username: already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, problem.NewConstraintViolation("email: already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// SignIn authenticates an existing account and issues a fresh token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, problem.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, problem.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}
