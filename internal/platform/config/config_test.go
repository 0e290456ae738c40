package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "global", cfg.CatalogLocking)
	assert.False(t, cfg.EnforceCapacity)
	assert.InDelta(t, 10.0, cfg.RateLimitPerSecond, 0.0001)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CATALOG_LOCKING", "activity")
	t.Setenv("ENFORCE_CAPACITY", "true")
	t.Setenv("RATE_LIMIT_PER_SECOND", "0")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "activity", cfg.CatalogLocking)
	assert.True(t, cfg.EnforceCapacity)
	assert.Zero(t, cfg.RateLimitPerSecond)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric port", "PORT", "http", `PORT must be a number between 1 and 65535, got "http"`},
		{"port out of range", "PORT", "70000", `PORT must be a number between 1 and 65535, got "70000"`},
		{"unknown log level", "LOG_LEVEL", "trace", `LOG_LEVEL must be one of debug, info, warn, error, got "trace"`},
		{"unknown log format", "LOG_FORMAT", "xml", `LOG_FORMAT must be text or json, got "xml"`},
		{"negative rate", "RATE_LIMIT_PER_SECOND", "-1", "RATE_LIMIT_PER_SECOND must not be negative"},
		{"zero burst", "RATE_LIMIT_BURST", "0", "RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled"},
		{"zero shutdown timeout", "SHUTDOWN_TIMEOUT", "0s", "SHUTDOWN_TIMEOUT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_MalformedBool(t *testing.T) {
	t.Setenv("ENFORCE_CAPACITY", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load environment variables")
}
