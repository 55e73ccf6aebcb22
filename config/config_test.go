package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.RatesFile)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.False(t, cfg.FeedEnabled)
	assert.Equal(t, time.Minute, cfg.FeedRefresh)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BANK_ADDR", ":9090")
	t.Setenv("BANK_LOG_LEVEL", "debug")
	t.Setenv("BANK_RATES_FILE", "/etc/bank/rates.yaml")
	t.Setenv("BANK_FEED_ENABLED", "true")
	t.Setenv("BANK_FEED_REFRESH", "30s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/bank/rates.yaml", cfg.RatesFile)
	assert.True(t, cfg.FeedEnabled)
	assert.Equal(t, 30*time.Second, cfg.FeedRefresh)
}

func TestFromEnv_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BANK_RATE_LIMIT=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BANK_RATE_LIMIT") })

	cfg, err := FromEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RateLimit)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "BANK_LOG_LEVEL", "loud"},
		{"rate limit", "BANK_RATE_LIMIT", "-1"},
		{"timeout", "BANK_REQUEST_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_FeedRefreshMustBePositive(t *testing.T) {
	t.Setenv("BANK_FEED_ENABLED", "true")
	t.Setenv("BANK_FEED_REFRESH", "0s")

	_, err := FromEnv()
	assert.Error(t, err)
}
