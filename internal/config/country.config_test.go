package config

import (
	"testing"
	"time"

	"country-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "GRPC_ADDR", "LOOKUP_FIELD", "CORS_ENABLED", "DATA_FILE", "DATA_URL",
		"DATABASE_URL", "REDIS_ADDR", "REDIS_PASS", "RATE_LIMIT", "RATE_WINDOW", "RATE_BLOCK", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, domain.FieldCapital, cfg.Field)
	assert.False(t, cfg.CORSEnabled)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 10*time.Minute, cfg.RateBlock)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.RateLimitEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOOKUP_FIELD", "list")
	t.Setenv("CORS_ENABLED", "true")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("RATE_LIMIT", "50")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RATE_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, domain.FieldList, cfg.Field)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.True(t, cfg.RateLimitEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOOKUP_FIELD":     "anthem",
		"CORS_ENABLED":     "sometimes",
		"RATE_LIMIT":       "many",
		"RATE_WINDOW":      "soon",
		"SHUTDOWN_TIMEOUT": "5",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
