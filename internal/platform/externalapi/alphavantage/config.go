// Package alphavantage provides a client for the Alpha Vantage query API.
package alphavantage

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is used when ALPHA_VANTAGE_BASE_URL is unset.
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key, sent as the apikey query parameter
	BaseURL string        // Base URL (e.g., "https://www.alphavantage.co")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL: os.Getenv("ALPHA_VANTAGE_BASE_URL"),
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
