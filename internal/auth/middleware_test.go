package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stuffshop/backend/internal/correlation"
	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
)

type stubResolver struct {
	users map[string]*domain.User
}

func (s stubResolver) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func newProtectedApp(t *testing.T, tm *TokenManager, users map[string]*domain.User) *fiber.App {
	t.Helper()

	m := NewMiddleware(tm, stubResolver{users: users}, NewBoundaryInterceptor(zap.NewNop()))

	app := fiber.New()
	app.Use(correlation.Middleware())
	app.Get("/orders", m.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Post("/admin", m.Handle, m.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func decodeProblem(t *testing.T, resp *http.Response) problem.Problem {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var pd problem.Problem
	require.NoError(t, json.Unmarshal(body, &pd))
	return pd
}

func TestHandleRejectsMissingCredentials(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	app := newProtectedApp(t, tm, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	pd := decodeProblem(t, resp)
	assert.Equal(t, http.StatusUnauthorized, pd.Status)
	assert.Equal(t, "ERR_UNAUTHORIZED", pd.Code)
	assert.Equal(t, "/orders", pd.Instance)
	assert.NotEmpty(t, pd.ErrorID)
}

func TestHandleRejectsMalformedToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	app := newProtectedApp(t, tm, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	pd := decodeProblem(t, resp)
	assert.Equal(t, "ERR_INVALID_TOKEN", pd.Code)
}

func TestHandleAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	app := newProtectedApp(t, tm, map[string]*domain.User{"alice": alice})

	token, _, err := tm.Issue("alice", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleRejectsUnknownSubject(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	app := newProtectedApp(t, tm, nil)

	token, _, err := tm.Issue("ghost", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	pd := decodeProblem(t, resp)
	assert.Equal(t, "ERR_UNAUTHORIZED", pd.Code)
}

func TestHandleRejectsStaleRoleToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	// alice was promoted after the token was issued; verification checks the
	// token against her current record.
	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin}
	app := newProtectedApp(t, tm, map[string]*domain.User{"alice": alice})

	token, _, err := tm.Issue("alice", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleForbidsInsufficientRole(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	bob := &domain.User{ID: 2, Username: "bob", Role: domain.RoleUser}
	app := newProtectedApp(t, tm, map[string]*domain.User{"bob": bob})

	token, _, err := tm.Issue("bob", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	pd := decodeProblem(t, resp)
	assert.Equal(t, http.StatusForbidden, pd.Status)
	assert.Equal(t, "ERR_FORBIDDEN", pd.Code)
	assert.Equal(t, "/admin", pd.Instance)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	tm := NewTokenManager(testSecret, 1)
	root := &domain.User{ID: 3, Username: "root", Role: domain.RoleAdmin}
	app := newProtectedApp(t, tm, map[string]*domain.User{"root": root})

	token, _, err := tm.Issue("root", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
