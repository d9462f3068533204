package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/stuffshop/backend/internal/correlation"
	"github.com/stuffshop/backend/internal/observability"
	"github.com/stuffshop/backend/internal/problem"
)

// RegisterMiddlewares attaches the global middleware chain: correlation
// propagation first, then request logging, then the error funnel wrapping
// the routes.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, normalizer *problem.Normalizer, timeout time.Duration) {
	app.Use(correlation.Middleware())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, normalizer))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the single funnel for every failure raised
// below it: panics become errors, errors become problem bodies. Auth
// boundary interceptions never reach here; they are written upstream.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, normalizer *problem.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = fmt.Errorf("panic: %v", r)
			}
			if err != nil {
				pd := normalizer.Normalize(mapTransportError(err), c.Path(), correlation.FromFiber(c))
				metrics.RecordError(c.Path(), c.Method(), pd.Code)
				c.Status(pd.Status)
				_ = c.JSON(pd)
				err = nil
			}
		}()
		return c.Next()
	}
}

// mapTransportError classifies fiber's own routing errors into the
// taxonomy; everything else passes through for the normalizer to classify.
func mapTransportError(err error) error {
	var ferr *fiber.Error
	if !errors.As(err, &ferr) {
		return err
	}
	switch ferr.Code {
	case http.StatusNotFound:
		return problem.NewNotFound("resource", "the requested resource was not found")
	case http.StatusUnauthorized:
		return problem.NewUnauthenticated(ferr.Message)
	case http.StatusForbidden:
		return problem.NewForbidden(ferr.Message)
	case http.StatusBadRequest:
		return problem.NewConstraintViolation(ferr.Message)
	default:
		return err
	}
}
