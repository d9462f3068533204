package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/stuffshop/backend/internal/api/http"
	"github.com/stuffshop/backend/internal/api/http/handlers"
	"github.com/stuffshop/backend/internal/config"
	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/observability"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/service"
)

type memoryUserRepo struct {
	users  []*domain.User
	nextID int64
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	return nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenTTLHours: 1,
		BcryptCost:    4,
	}}
	authService := service.NewAuthService(cfg, &memoryUserRepo{})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), problem.NewNormalizer(zap.NewNop()), 0)

	handler := handlers.NewAuthHandler(authService)
	app.Post("/auth/sign-up", handler.SignUp)
	app.Post("/auth/sign-in", handler.SignIn)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func readJSON(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestSignUpSuccessEnvelope(t *testing.T) {
	app := newAuthApp(t)

	resp := post(t, app, "/auth/sign-up", `{"username":"alice","email":"alice@example.com","password":"s3cret","name":"Alice"}`)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, "you signed up successfully", body["message"])
	assert.Equal(t, float64(nethttp.StatusCreated), body["status"])

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "USER", user["role"])

	auth := data["auth"].(map[string]any)
	assert.NotEmpty(t, auth["token"])
}

func TestSignUpBlankFieldsNormalized(t *testing.T) {
	app := newAuthApp(t)

	resp := post(t, app, "/auth/sign-up", `{"password":"s3cret"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, "ERR_VALIDATION_FAILED", body["code"])
	assert.Equal(t, float64(nethttp.StatusBadRequest), body["status"])
	assert.Equal(t, "username: must not be blank; email: must not be blank", body["detail"])
	assert.Equal(t, "/auth/sign-up", body["instance"])
	assert.NotEmpty(t, body["errorId"])
}

func TestSignUpMalformedJSONNormalized(t *testing.T) {
	app := newAuthApp(t)

	resp := post(t, app, "/auth/sign-up", `{"username": "alice",`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, "ERR_INVALID_JSON", body["code"])
	assert.Equal(t, "Malformed JSON request", body["title"])
}

func TestSignInBadCredentialsNormalized(t *testing.T) {
	app := newAuthApp(t)

	resp := post(t, app, "/auth/sign-in", `{"username":"ghost","password":"nope"}`)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, "ERR_UNAUTHORIZED", body["code"])
	assert.Equal(t, "invalid credentials", body["detail"])
}

func TestSignUpThenSignIn(t *testing.T) {
	app := newAuthApp(t)

	resp := post(t, app, "/auth/sign-up", `{"username":"alice","email":"alice@example.com","password":"s3cret"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = post(t, app, "/auth/sign-in", `{"username":"alice","password":"s3cret"}`)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, "you signed in successfully", body["message"])
}
