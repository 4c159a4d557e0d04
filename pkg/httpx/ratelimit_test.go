package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	req := requestFrom("192.168.1.1:12345")
	require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))

	req.Header.Set("X-Real-IP", "203.0.113.2")
	require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
	require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))

	require.Equal(t, "pipe", httpx.IPKeyExtractor(requestFrom("pipe")))
}

func TestCompositeKeyExtractorSkipsEmpty(t *testing.T) {
	t.Parallel()

	extract := httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)

	req := requestFrom("10.0.0.1:1")
	require.Equal(t, "10.0.0.1", extract(req))

	req = req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyUserID, int64(9)))
	require.Equal(t, "user:9:10.0.0.1", extract(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	config := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
	h := httpx.RateLimitByIP(config)(okHandler())

	for i := range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	// Other clients have their own bucket.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.2:1"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitAllowsUnkeyedRequests(t *testing.T) {
	t.Parallel()

	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitMiddleware(config, func(*http.Request) string { return "" })(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitProfiles(t *testing.T) {
	t.Parallel()

	for name, config := range map[string]httpx.RateLimitConfig{
		"strict":  httpx.StrictLimit,
		"lenient": httpx.LenientLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, config.RequestsPerWindow)
			require.Positive(t, config.Window)
			require.Positive(t, config.Burst)
		})
	}
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("no overrides", func(t *testing.T) {
		require.Equal(t, defaults, httpx.ParseRateLimitFromEnv("TEST", defaults))
	})

	t.Run("all overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "120")
		t.Setenv("RATELIMIT_TEST_BURST", "7")

		require.Equal(t, httpx.RateLimitConfig{
			RequestsPerWindow: 50,
			Window:            2 * time.Minute,
			Burst:             7,
		}, httpx.ParseRateLimitFromEnv("TEST", defaults))
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "lots")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "-5")
		t.Setenv("RATELIMIT_TEST_BURST", "0")

		require.Equal(t, defaults, httpx.ParseRateLimitFromEnv("TEST", defaults))
	})
}
