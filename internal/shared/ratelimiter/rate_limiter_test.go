package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name  string
		rps   string
		burst string
		want  Config
	}{
		{"defaults", "", "", Config{RPS: DefaultRPS, Burst: DefaultBurst}},
		{"custom", "2.5", "4", Config{RPS: 2.5, Burst: 4}},
		{"invalid falls back", "abc", "-1", Config{RPS: DefaultRPS, Burst: DefaultBurst}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATE_LIMIT_RPS", tt.rps)
			t.Setenv("RATE_LIMIT_BURST", tt.burst)
			assert.Equal(t, tt.want, LoadConfig())
		})
	}
}

func TestRateLimiter_AllowPerKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(Config{RPS: 1, Burst: 2})
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refilled")
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(Config{RPS: 1, Burst: 1})
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(idleTTL + time.Second)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "fresh")
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(Config{RPS: 0.001, Burst: 1})
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do().Code)

	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
}
