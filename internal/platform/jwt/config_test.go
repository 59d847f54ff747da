package jwtmw

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		access      string
		refresh     string
		wantAccess  time.Duration
		wantRefresh time.Duration
	}{
		{"defaults", "", "", DefaultAccessTTL, DefaultRefreshTTL},
		{"overrides", "5m", "24h", 5 * time.Minute, 24 * time.Hour},
		{"invalid values fall back", "soon", "-1h", DefaultAccessTTL, DefaultRefreshTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKeyJWTSecret, "s3cret")
			t.Setenv("JWT_ACCESS_TTL", tt.access)
			t.Setenv("JWT_REFRESH_TTL", tt.refresh)

			cfg := LoadConfig()

			if cfg.Secret != "s3cret" {
				t.Errorf("expected secret s3cret, got %q", cfg.Secret)
			}
			if cfg.AccessTTL != tt.wantAccess {
				t.Errorf("expected access ttl %v, got %v", tt.wantAccess, cfg.AccessTTL)
			}
			if cfg.RefreshTTL != tt.wantRefresh {
				t.Errorf("expected refresh ttl %v, got %v", tt.wantRefresh, cfg.RefreshTTL)
			}
			if cfg.StateTTL != DefaultStateTTL {
				t.Errorf("expected state ttl %v, got %v", DefaultStateTTL, cfg.StateTTL)
			}
		})
	}
}
