package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/stuffshop/backend/internal/correlation"
	"github.com/stuffshop/backend/internal/problem"
)

// BoundaryInterceptor writes authentication and authorization failures at
// the transport boundary, before any handler runs. It builds the same
// problem body shape as the normalizer but short-circuits the request
// directly; these failures never reach the handler-error funnel.
type BoundaryInterceptor struct {
	logger *zap.Logger
}

// NewBoundaryInterceptor builds the interceptor.
func NewBoundaryInterceptor(logger *zap.Logger) *BoundaryInterceptor {
	return &BoundaryInterceptor{logger: logger}
}

// Unauthenticated terminates the request with a 401 problem body.
func (b *BoundaryInterceptor) Unauthenticated(c *fiber.Ctx, detail string) error {
	return b.intercept(c, problem.KindUnauthenticated, detail,
		zap.String("path", c.Path()))
}

// MalformedToken terminates the request with a 401 invalid-token problem
// body.
func (b *BoundaryInterceptor) MalformedToken(c *fiber.Ctx, detail string) error {
	return b.intercept(c, problem.KindMalformedToken, detail,
		zap.String("path", c.Path()))
}

// Forbidden terminates the request with a 403 problem body, recording the
// authenticated caller that was denied.
func (b *BoundaryInterceptor) Forbidden(c *fiber.Ctx, subject, detail string) error {
	return b.intercept(c, problem.KindForbidden, detail,
		zap.String("path", c.Path()),
		zap.String("subject", subject))
}

func (b *BoundaryInterceptor) intercept(c *fiber.Ctx, kind problem.Kind, detail string, fields ...zap.Field) error {
	rc := correlation.FromFiber(c)
	pd := problem.Build(kind, "", detail, c.Path(), rc)

	fields = append(fields,
		zap.String("errorId", pd.ErrorID),
		zap.String("kind", kind.String()),
		zap.String("correlationId", rc.CorrelationID),
	)
	b.logger.Error("request intercepted at auth boundary", fields...)

	return c.Status(pd.Status).JSON(pd)
}
