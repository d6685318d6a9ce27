package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"NURTURE_ADDR", "LOG_FORMAT", "MILESTONES_PATH", "MILESTONES_DSN",
		"REDIS_URL", "CHAT_RATE_LIMIT", "CHAT_RATE_WINDOW", "CORS_ALLOWED_ORIGINS",
		"CHAT_RATE_LIMIT_DISABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.Catalog.MilestonesPath)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, DefaultAllowedOrigins, cfg.CORS.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NURTURE_ADDR", ":9090")
	t.Setenv("MILESTONES_PATH", "data/milestones.json")
	t.Setenv("CHAT_RATE_LIMIT", "5")
	t.Setenv("CHAT_RATE_WINDOW", "10s")
	t.Setenv("CHAT_RATE_LIMIT_DISABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.org, ,http://localhost:3000")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "data/milestones.json", cfg.Catalog.MilestonesPath)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://app.example.org", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CHAT_RATE_LIMIT", "lots")
	t.Setenv("CHAT_RATE_WINDOW", "-1s")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}
