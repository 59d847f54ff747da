package jwtmw

import (
	"os"
	"time"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

const (
	// DefaultAccessTTL is the lifetime of an access token.
	DefaultAccessTTL = 15 * time.Minute
	// DefaultRefreshTTL is the lifetime of a refresh session.
	DefaultRefreshTTL = 7 * 24 * time.Hour
	// DefaultStateTTL bounds the OAuth round trip.
	DefaultStateTTL = 10 * time.Minute
)

// Config holds token signing settings.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	StateTTL   time.Duration
}

// LoadConfig reads JWT_SECRET and optional JWT_ACCESS_TTL / JWT_REFRESH_TTL
// (Go duration strings, e.g. "15m", "168h").
func LoadConfig() Config {
	cfg := Config{
		Secret:     os.Getenv(EnvKeyJWTSecret),
		AccessTTL:  DefaultAccessTTL,
		RefreshTTL: DefaultRefreshTTL,
		StateTTL:   DefaultStateTTL,
	}
	if d, err := time.ParseDuration(os.Getenv("JWT_ACCESS_TTL")); err == nil && d > 0 {
		cfg.AccessTTL = d
	}
	if d, err := time.ParseDuration(os.Getenv("JWT_REFRESH_TTL")); err == nil && d > 0 {
		cfg.RefreshTTL = d
	}
	return cfg
}
