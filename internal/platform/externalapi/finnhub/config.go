// Package finnhub provides a client for the Finnhub REST API.
package finnhub

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is used when FINNHUB_BASE_URL is unset.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API token, sent as the token query parameter
	BaseURL string        // Base URL including the version path
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("FINNHUB_API_KEY"),
		BaseURL: os.Getenv("FINNHUB_BASE_URL"),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v, err := strconv.Atoi(os.Getenv("MARKETDATA_TIMEOUT_SEC")); err == nil && v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	return cfg
}
