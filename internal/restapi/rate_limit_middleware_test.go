package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farecalc.onebusaway.org/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestLimiter(t *testing.T, ratePerInterval int, interval time.Duration) http.Handler {
	rl := NewRateLimitMiddleware(ratePerInterval, interval)
	t.Cleanup(rl.Stop)
	return rl.Handler(okHandler())
}

func serveKey(handler http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test?key="+key, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	limitedHandler := newTestLimiter(t, 3, time.Second)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "test-api-key").Code,
			"Request %d should be allowed", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, serveKey(limitedHandler, "test-api-key").Code,
		"Request over limit should be blocked")
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	limitedHandler := newTestLimiter(t, 2, time.Second)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "api-key-1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serveKey(limitedHandler, "api-key-1").Code,
		"API key 1 should be rate limited")
	assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "api-key-2").Code,
		"API key 2 should not be affected")
}

func TestRateLimitMiddleware_ExemptsOneBusAwayiPhone(t *testing.T) {
	limitedHandler := newTestLimiter(t, 1, time.Second)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "org.onebusaway.iphone").Code,
			"Exempted API key request %d should always be allowed", i+1)
	}
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	limitedHandler := newTestLimiter(t, 1, 100*time.Millisecond)

	assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "test-key").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveKey(limitedHandler, "test-key").Code)

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "test-key").Code,
		"Request after refill should succeed")
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	limitedHandler := newTestLimiter(t, 5, time.Second)

	var wg sync.WaitGroup
	results := make([]int, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index] = serveKey(limitedHandler, "concurrent-test").Code
		}(i)
	}
	wg.Wait()

	successCount := 0
	rateLimitedCount := 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			rateLimitedCount++
		}
	}

	assert.Equal(t, 5, successCount, "Should have exactly 5 successful requests")
	assert.Equal(t, 5, rateLimitedCount, "Should have exactly 5 rate limited requests")
}

func TestRateLimitMiddleware_RateLimitedResponseFormat(t *testing.T) {
	limitedHandler := newTestLimiter(t, 1, time.Second)

	serveKey(limitedHandler, "test-key")
	w := serveKey(limitedHandler, "test-key")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
	assert.Equal(t, http.StatusTooManyRequests, model.Code)
	assert.Contains(t, model.Text, "Rate limit")
	assert.Equal(t, 2, model.Version)
}

func TestRateLimitMiddleware_EdgeCases(t *testing.T) {
	t.Run("Zero rate limit", func(t *testing.T) {
		limitedHandler := newTestLimiter(t, 0, time.Second)

		w := serveKey(limitedHandler, "test-key")
		assert.Equal(t, http.StatusTooManyRequests, w.Code,
			"Zero rate limit should block all requests")
		assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	})

	t.Run("Negative rate limit disables limiting", func(t *testing.T) {
		limitedHandler := newTestLimiter(t, -1, time.Second)

		for i := 0; i < 50; i++ {
			assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "unlimited").Code)
		}
	})

	t.Run("Empty API key", func(t *testing.T) {
		limitedHandler := newTestLimiter(t, 5, time.Second)
		assert.Equal(t, http.StatusOK, serveKey(limitedHandler, "").Code,
			"Empty API key should be handled gracefully")
	})
}

func TestRateLimitMiddleware_ReusesLimiterPerKey(t *testing.T) {
	rl := NewRateLimitMiddleware(5, time.Second)
	defer rl.Stop()

	first := rl.getLimiter("key1")
	assert.Same(t, first, rl.getLimiter("key1"))
	assert.NotSame(t, first, rl.getLimiter("key2"))
}

func TestRateLimitIntegration(t *testing.T) {
	api := createTestApi(t)
	api.Shutdown()
	api.limiter = NewRateLimitMiddleware(2, time.Second)
	api.rateLimiter = api.limiter.Handler
	defer api.Shutdown()
	handler := api.Handler()

	endpoint := "/api/where/fare-operators.json?key=TEST"
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, endpoint, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i+1))
	}

	req := httptest.NewRequest(http.MethodGet, endpoint, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Invalid keys are rejected before they reach a limiter.
	req = httptest.NewRequest(http.MethodGet, "/api/where/fare-operators.json?key=invalid", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddleware_StopEndsCleanup(t *testing.T) {
	rl := NewRateLimitMiddleware(5, time.Second)
	finished := make(chan struct{})
	go func() {
		rl.cleanup()
		close(finished)
	}()

	rl.Stop()
	rl.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not return after Stop")
	}

	// Limiting keeps working after the cleanup goroutine is gone.
	handler := rl.Handler(okHandler())
	assert.Equal(t, http.StatusOK, serveKey(handler, "after-stop").Code)
}

func TestRateLimitMiddleware_RemovesIdleLimiters(t *testing.T) {
	rl := NewRateLimitMiddleware(2, time.Second)
	defer rl.Stop()

	handler := rl.Handler(okHandler())
	serveKey(handler, "busy")
	serveKey(handler, "busy")
	rl.getLimiter("idle")

	rl.removeIdleLimiters()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.limiters, "idle")
	assert.Contains(t, rl.limiters, "busy")
}
