package correlation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(capture func(RequestContext)) *fiber.App {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/", func(c *fiber.Ctx) error {
		if capture != nil {
			capture(FromFiber(c))
		}
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestInboundHeaderHonoredVerbatim(t *testing.T) {
	var seen RequestContext
	app := newApp(func(rc RequestContext) { seen = rc })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", resp.Header.Get(Header))
	assert.Equal(t, "abc-123", seen.CorrelationID)
}

func TestBlankHeaderGetsGeneratedID(t *testing.T) {
	app := newApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "   ")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header.Get(Header))
	assert.NotEqual(t, "   ", resp.Header.Get(Header))
}

func TestGeneratedIDsUniqueAcrossConcurrentRequests(t *testing.T) {
	app := newApp(nil)

	var mu sync.Mutex
	ids := make(map[string]struct{})

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			if err != nil {
				return
			}
			id := resp.Header.Get(Header)
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 25)
	for id := range ids {
		assert.NotEmpty(t, id)
	}
}

func TestTraceparentForwarded(t *testing.T) {
	var seen RequestContext
	app := newApp(func(rc RequestContext) { seen = rc })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", seen.TraceID)
	assert.Equal(t, "00f067aa0ba902b7", seen.SpanID)
}

func TestInvalidTraceparentOmitted(t *testing.T) {
	var seen RequestContext
	app := newApp(func(rc RequestContext) { seen = rc })

	for _, value := range []string{"", "junk", "00-short-span-01", "00-zzzz2f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.Header.Set("traceparent", value)
		}
		_, err := app.Test(req)
		require.NoError(t, err)

		assert.Empty(t, seen.TraceID, "traceparent %q", value)
		assert.Empty(t, seen.SpanID, "traceparent %q", value)
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	rc := &RequestContext{CorrelationID: "cid", TraceID: "tid", SpanID: "sid"}
	ctx := With(context.Background(), rc)

	got := FromContext(ctx)
	assert.Equal(t, *rc, got)

	assert.Zero(t, FromContext(context.Background()))
}
