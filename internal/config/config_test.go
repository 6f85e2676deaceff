package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k")
	t.Setenv("GOOGLE_CSE_ID", "cx")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 5*time.Second, cfg.SearchTimeout())
	require.Equal(t, 4*time.Second, cfg.FetchTimeout())
	require.Equal(t, 3, cfg.EnrichWorkers)
	require.True(t, cfg.HasSearchCredentials())
}

func TestLoadNormalizesTunables(t *testing.T) {
	t.Setenv("SEARCH_TIMEOUT_SEC", "0")
	t.Setenv("FETCH_TIMEOUT_SEC", "-2")
	t.Setenv("ENRICH_WORKERS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 5, cfg.SearchTimeoutSec, "zero falls back to default")
	require.Equal(t, 4, cfg.FetchTimeoutSec, "negative falls back to default")
	require.Equal(t, 10, cfg.EnrichWorkers, "clamped to the upper bound")
}

func TestHasSearchCredentials(t *testing.T) {
	cfg := &Config{GoogleAPIKey: "k"}
	require.False(t, cfg.HasSearchCredentials(), "both key and cx are required")

	cfg.GoogleCSEID = "cx"
	require.True(t, cfg.HasSearchCredentials())
}
