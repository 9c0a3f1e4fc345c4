package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursehub/internal/logger"

	"github.com/stretchr/testify/require"
)

func TestMemoryCounterWindowReset(t *testing.T) {
	c := NewMemoryCounter()
	ctx := context.Background()

	n, err := c.Incr(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, _ = c.Incr(ctx, "k", 20*time.Millisecond)
	require.Equal(t, int64(2), n)

	time.Sleep(30 * time.Millisecond)
	n, _ = c.Incr(ctx, "k", 20*time.Millisecond)
	require.Equal(t, int64(1), n, "count restarts after the window elapses")
}

func TestRateLimitRejectsOverMax(t *testing.T) {
	limited := RateLimit(NewMemoryCounter(), 3, time.Minute, logger.New())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/course/preview", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/course/preview", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"status":429,"message":"Too many requests. Please try again later."}`, rec.Body.String())
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	limited := RateLimit(NewMemoryCounter(), 1, time.Minute, logger.New())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	first := httptest.NewRequest(http.MethodGet, "/course/preview", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same client is over the limit, a different client is not.
	again := httptest.NewRequest(http.MethodGet, "/course/preview", nil)
	again.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, again)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/course/preview", nil)
	other.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, other)
	require.Equal(t, http.StatusOK, rec.Code)
}
