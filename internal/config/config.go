// Package config loads service configuration from environment variables.
//
// Credentials are injected once at startup and carried down through the
// pipeline via this struct; nothing reads the environment ad hoc.
package config

import (
	"fmt"
	"time"

	env "github.com/netflix/go-env"
)

// Config holds everything the service needs at runtime.
type Config struct {
	// Google Custom Search credentials. Required for /api/leads.
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	GoogleCSEID  string `env:"GOOGLE_CSE_ID"`

	// HTTP server
	Addr string `env:"ADDR,default=:8080"`

	// Redis (optional; the service degrades to uncached operation)
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	// Tunables. Zero or out-of-range values are normalized by Load.
	SearchTimeoutSec int `env:"SEARCH_TIMEOUT_SEC,default=5"`
	FetchTimeoutSec  int `env:"FETCH_TIMEOUT_SEC,default=4"`
	EnrichWorkers    int `env:"ENRICH_WORKERS,default=3"`
}

// Load parses the environment into a Config and normalizes tunables
// into safe ranges.
func Load() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	normalize(&cfg)
	return &cfg, nil
}

func normalize(cfg *Config) {
	if cfg.SearchTimeoutSec < 1 {
		cfg.SearchTimeoutSec = 5
	}
	if cfg.FetchTimeoutSec < 1 {
		cfg.FetchTimeoutSec = 4
	}
	if cfg.EnrichWorkers < 1 {
		cfg.EnrichWorkers = 3
	}
	if cfg.EnrichWorkers > 10 {
		cfg.EnrichWorkers = 10
	}
}

// HasSearchCredentials reports whether the Google CSE credentials are set.
func (c *Config) HasSearchCredentials() bool {
	return c.GoogleAPIKey != "" && c.GoogleCSEID != ""
}

// SearchTimeout is the per-call budget for one CSE page fetch.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSec) * time.Second
}

// FetchTimeout is the per-page budget during contact enrichment.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}
