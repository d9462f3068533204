package correlation

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Correlation-ID"

// traceparentHeader carries upstream W3C trace context when present.
const traceparentHeader = "traceparent"

const localsKey = "correlation_ctx"

type contextKey struct{}

// RequestContext holds the identifiers threaded through one request's
// processing. Trace and span ids are forwarded from upstream only, never
// generated here.
type RequestContext struct {
	CorrelationID string
	TraceID       string
	SpanID        string
}

// Middleware establishes the correlation context for every inbound request:
// honor a non-blank inbound header, otherwise generate a fresh id; always
// echo the resolved id on the response. The context is stored per request
// and released unconditionally when the request finishes, on every exit
// path.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cid := strings.TrimSpace(c.Get(Header))
		if cid == "" {
			cid = uuid.NewString()
		}

		rc := &RequestContext{CorrelationID: cid}
		rc.TraceID, rc.SpanID = parseTraceparent(c.Get(traceparentHeader))

		c.Locals(localsKey, rc)
		c.SetUserContext(With(c.UserContext(), rc))
		c.Set(Header, cid)

		defer c.Locals(localsKey, nil)
		return c.Next()
	}
}

// FromFiber reads the request's correlation context. The zero value is
// returned when no middleware established one.
func FromFiber(c *fiber.Ctx) RequestContext {
	if rc, ok := c.Locals(localsKey).(*RequestContext); ok && rc != nil {
		return *rc
	}
	return RequestContext{}
}

// With attaches the correlation context to a context.Context so code below
// the transport layer can read it without a fiber dependency.
func With(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext reads the correlation context previously attached with With.
func FromContext(ctx context.Context) RequestContext {
	if rc, ok := ctx.Value(contextKey{}).(*RequestContext); ok && rc != nil {
		return *rc
	}
	return RequestContext{}
}

// parseTraceparent extracts trace and span ids from a W3C traceparent value
// ("00-<32 hex trace>-<16 hex span>-<flags>"). Unparseable input yields
// empty ids rather than fabricated ones.
func parseTraceparent(value string) (traceID, spanID string) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 4 || len(parts[1]) != 32 || len(parts[2]) != 16 {
		return "", ""
	}
	if !isHex(parts[1]) || !isHex(parts[2]) {
		return "", ""
	}
	return parts[1], parts[2]
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
