// Package ratelimiter はクライアントIPごとのリクエスト頻度を制限します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// DefaultRPS は1秒あたりに補充されるトークン数です。
	DefaultRPS = 10
	// DefaultBurst はバケットの容量です。
	DefaultBurst = 20

	// idleTTL を超えて使われていないIPのバケットは破棄します。
	idleTTL = 10 * time.Minute
)

// Config はレート制限の設定です。
type Config struct {
	RPS   float64
	Burst int
}

// LoadConfig はRATE_LIMIT_RPS / RATE_LIMIT_BURSTを読み込みます。不正な値は既定値になります。
func LoadConfig() Config {
	cfg := Config{RPS: DefaultRPS, Burst: DefaultBurst}
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		cfg.RPS = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		cfg.Burst = v
	}
	return cfg
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter はIPごとのトークンバケットを保持します。
type RateLimiter struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter は新しいRateLimiterを生成します。
func NewRateLimiter(cfg Config) *RateLimiter {
	return &RateLimiter{cfg: cfg, now: time.Now, visitors: make(map[string]*visitor)}
}

// Allow はkeyのバケットからトークンを1つ消費できるかを返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep はidleTTL以上アクセスのないバケットを削除し、削除数を返します。
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idleTTL)
	n := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			n++
		}
	}
	return n
}

// Middleware は上限を超えたリクエストを429で打ち切るgin middlewareを返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", c.FullPath())
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
