package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/httpserver/middleware"
	"github.com/davidbz/docquote/internal/observability"
)

func TestChain_AppliesInOrder(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("first"), tag("second"), tag("third"))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "third", "handler"}, order)
}

func TestTrace(t *testing.T) {
	var seenRequestID string
	handler := middleware.Trace()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID = observability.GetRequestID(r.Context())
		require.NotEmpty(t, observability.GetTraceID(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates ids", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pricing", nil))

		require.Equal(t, http.StatusTeapot, w.Code)
		require.Len(t, w.Header().Get("X-Trace-Id"), 32)
		require.NotEmpty(t, w.Header().Get("X-Request-Id"))
		require.Equal(t, w.Header().Get("X-Request-Id"), seenRequestID)
	})

	t.Run("keeps client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/pricing", nil)
		req.Header.Set("X-Request-Id", "checkout-ui-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		require.Equal(t, "checkout-ui-123", w.Header().Get("X-Request-Id"))
		require.Equal(t, "checkout-ui-123", seenRequestID)
	})
}

func TestRecover(t *testing.T) {
	handler := middleware.Recover()(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("nil config is a no-op", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")

		middleware.CORS(nil)(next).ServeHTTP(w, req)

		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		handler := middleware.CORS(&config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		})(next)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")

		handler.ServeHTTP(w, req)

		require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
