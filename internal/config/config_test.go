package config

import (
	"testing"
	"time"

	"github.com/layer-3/ordauth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, EventsNone, cfg.Events)
	assert.False(t, cfg.NeedsRedis())
	assert.Equal(t, service.DefaultConfig(), cfg.Service())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORDAUTH_HTTP_ADDR", ":8080")
	t.Setenv("ORDAUTH_STORE", "redis")
	t.Setenv("ORDAUTH_CHALLENGE_TTL", "90s")
	t.Setenv("ORDAUTH_MAX_ATTEMPTS", "3")
	t.Setenv("ORDAUTH_CORS_ORIGINS", "https://a.test,https://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.NeedsRedis())
	assert.Equal(t, 90*time.Second, cfg.Service().ChallengeTTL)
	assert.Equal(t, 3, cfg.Service().MaxAttempts)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.HTTP.CORSOrigins)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"ORDAUTH_STORE":            "postgres",
		"ORDAUTH_EVENTS":           "kafka",
		"ORDAUTH_SESSION_TTL":      "-1m",
		"ORDAUTH_MAX_ATTEMPTS":     "0",
		"ORDAUTH_CHALLENGE_PREFIX": "MY APP",
		"ORDAUTH_COOLDOWN_WINDOW":  "soon",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
