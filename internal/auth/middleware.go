package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/stuffshop/backend/internal/domain"
)

const principalKey = "auth_principal"

// UserResolver resolves the authoritative account record for a token
// subject.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Middleware validates bearer tokens and loads principals for protected
// routes.
type Middleware struct {
	tokens   *TokenManager
	users    UserResolver
	boundary *BoundaryInterceptor
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, users UserResolver, boundary *BoundaryInterceptor) *Middleware {
	return &Middleware{tokens: tokens, users: users, boundary: boundary}
}

// Handle enforces authentication: it extracts the bearer token, resolves
// the subject's current record, and verifies the token against that
// record's subject and role. Verification failures terminate the request
// at the boundary.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return m.boundary.Unauthenticated(c, "Authentication is required to access this resource")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return m.boundary.Unauthenticated(c, "invalid authorization header")
	}
	token := parts[1]

	subject, err := m.tokens.ExtractSubject(token)
	if err != nil {
		return m.boundary.MalformedToken(c, "token could not be decoded")
	}

	user, err := m.users.GetByUsername(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m.boundary.Unauthenticated(c, "unknown subject")
		}
		return err
	}

	if !m.tokens.Verify(token, user.Username, user.Role) {
		return m.boundary.Unauthenticated(c, "invalid or expired token")
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. With no arguments it only requires authentication.
func (m *Middleware) RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := PrincipalFromContext(c)
		if !ok {
			return m.boundary.Unauthenticated(c, "Authentication is required to access this resource")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return m.boundary.Forbidden(c, user.Username, "You do not have permission to access this resource")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated account.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(principalKey).(*domain.User)
	return user, ok
}
