// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL           = "https://api.twelvedata.com"
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerMinute = 8 // free plan limit
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey  string        // API key for authentication
	BaseURL           string        // Base URL for the API
	Timeout           time.Duration // HTTP request timeout
	RequestsPerMinute int           // Client-side rate limit
}

// LoadConfig loads Twelve Data configuration from environment variables.
// Unset or malformed values fall back to defaults.
func LoadConfig() Config {
	cfg := Config{
		TwelveDataAPIKey:  os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL:           os.Getenv("TWELVE_DATA_BASE_URL"),
		Timeout:           defaultTimeout,
		RequestsPerMinute: defaultRequestsPerMinute,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if d, err := time.ParseDuration(os.Getenv("TWELVE_DATA_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("TWELVE_DATA_RPM")); err == nil && n > 0 {
		cfg.RequestsPerMinute = n
	}
	return cfg
}
