package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 12, 18, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func serve(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/fetch-news", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Second)

	// Burst of 3
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.False(t, rl.Allow("127.0.0.1"))

	// Different IP has its own bucket
	assert.True(t, rl.Allow("192.168.1.1"))

	// One token refills every window/limit
	clock.advance(time.Second / 3)
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.False(t, rl.Allow("127.0.0.1"))

	clock.advance(time.Second)
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
}

func TestRateLimitMiddleware_AllowsRequestsUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 5, time.Minute)
	handler := RateLimitMiddleware(limiter)(okHandler())

	for i := 0; i < 5; i++ {
		rec := serve(handler, "127.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitMiddleware_Returns429ForExceededLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	handler := RateLimitMiddleware(limiter)(okHandler())

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(handler, "127.0.0.1:1234").Code)
	}

	rec := serve(handler, "127.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_UsesIPAddressForLimiting(t *testing.T) {
	limiter, clock := newTestLimiter(t, 1, time.Minute)
	handler := RateLimitMiddleware(limiter)(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler, "127.0.0.1:1234").Code)
	// Same host on another port shares the bucket
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "127.0.0.1:4321").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "192.168.1.1:5678").Code)

	clock.advance(time.Minute)
	assert.Equal(t, http.StatusOK, serve(handler, "127.0.0.1:1234").Code)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		setupReq   func(*http.Request)
		expectedIP string
	}{
		{
			name: "uses first X-Forwarded-For address",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "uses X-Real-IP header",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "203.0.113.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "falls back to RemoteAddr host",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1:1234"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "keeps RemoteAddr without port",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "prefers X-Forwarded-For over X-Real-IP",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1")
				r.Header.Set("X-Real-IP", "198.51.100.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			tt.setupReq(req)
			assert.Equal(t, tt.expectedIP, extractIP(req))
		})
	}
}
