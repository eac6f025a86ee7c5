package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, testLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other keys have their own bucket.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_WindowRefill(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond, testLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimitByPath(t *testing.T) {
	limits := []PathRateLimit{
		{Path: "/auth/login", Rate: 1, Window: time.Minute},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RateLimitByPath(limits, 100, time.Minute, testLogger())(next)

	do := func(path, ip string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// The login path has a budget of one per window.
	assert.Equal(t, http.StatusOK, do("/auth/login", "1.2.3.4"))
	assert.Equal(t, http.StatusTooManyRequests, do("/auth/login", "1.2.3.4"))

	// Another client is unaffected.
	assert.Equal(t, http.StatusOK, do("/auth/login", "5.6.7.8"))

	// Other paths run on the roomier default limiter.
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, do("/items/", "1.2.3.4"))
	}
}

func TestRateLimitByPath_SharedBucketAcrossConnections(t *testing.T) {
	limits := []PathRateLimit{
		{Path: "/auth/login", Rate: 1, Window: time.Minute},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RateLimitByPath(limits, 100, time.Minute, testLogger())(next)

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// One client on two connections still shares one bucket.
	assert.Equal(t, http.StatusOK, do("1.2.3.4:1111"))
	assert.Equal(t, http.StatusTooManyRequests, do("1.2.3.4:2222"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "remote addr port stripped",
			remote: "10.0.0.1:1234",
			want:   "10.0.0.1",
		},
		{
			name:   "remote addr without port",
			remote: "10.0.0.1",
			want:   "10.0.0.1",
		},
		{
			name:   "ipv6 remote addr",
			remote: "[::1]:1234",
			want:   "::1",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			remote:  "10.0.0.1:1234",
			want:    "1.2.3.4",
		},
		{
			name:    "x-forwarded-for single",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4"},
			remote:  "10.0.0.1:1234",
			want:    "1.2.3.4",
		},
		{
			name:    "x-forwarded-for chain keeps first hop",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"},
			remote:  "10.0.0.1:1234",
			want:    "1.2.3.4",
		},
		{
			name: "forwarded-for wins over real-ip",
			headers: map[string]string{
				"X-Forwarded-For": "1.2.3.4",
				"X-Real-IP":       "5.6.7.8",
			},
			remote: "10.0.0.1:1234",
			want:   "1.2.3.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
