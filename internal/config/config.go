package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/layer-3/ordauth/service"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Event backends
const (
	EventsNone  = "none"
	EventsRedis = "redis"
)

type Config struct {
	Debug bool `env:"ORDAUTH_DEBUG" envDefault:"false"`

	HTTP struct {
		Addr        string   `env:"ORDAUTH_HTTP_ADDR" envDefault:":9000"`
		CORSOrigins []string `env:"ORDAUTH_CORS_ORIGINS" envSeparator:","`
	}

	Store    string `env:"ORDAUTH_STORE" envDefault:"memory"`
	Events   string `env:"ORDAUTH_EVENTS" envDefault:"none"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// PEM encoded P-256 private key sealing challenge tokens. Every instance
	// behind a load balancer needs the same key; a random one is generated
	// when empty.
	JWTKeyPEM string `env:"ORDAUTH_JWT_KEY_PEM"`

	Auth struct {
		ChallengeTTL    time.Duration `env:"ORDAUTH_CHALLENGE_TTL" envDefault:"5m"`
		SessionTTL      time.Duration `env:"ORDAUTH_SESSION_TTL" envDefault:"30m"`
		MaxAttempts     int           `env:"ORDAUTH_MAX_ATTEMPTS" envDefault:"5"`
		CooldownWindow  time.Duration `env:"ORDAUTH_COOLDOWN_WINDOW" envDefault:"5m"`
		ChallengePrefix string        `env:"ORDAUTH_CHALLENGE_PREFIX" envDefault:"ORDINALRAINBOWS_AUTH"`
	}
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	// Ignore a missing .env file, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Service returns the authenticator settings
func (c *Config) Service() service.Config {
	return service.Config{
		ChallengeTTL:    c.Auth.ChallengeTTL,
		SessionTTL:      c.Auth.SessionTTL,
		MaxAttempts:     c.Auth.MaxAttempts,
		CooldownWindow:  c.Auth.CooldownWindow,
		ChallengePrefix: c.Auth.ChallengePrefix,
	}
}

func (c *Config) Validate() error {
	if !slices.Contains([]string{StoreMemory, StoreRedis}, c.Store) {
		return fmt.Errorf("ORDAUTH_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.Store)
	}
	if !slices.Contains([]string{EventsNone, EventsRedis}, c.Events) {
		return fmt.Errorf("ORDAUTH_EVENTS must be %q or %q, got %q", EventsNone, EventsRedis, c.Events)
	}
	if err := c.Service().Validate(); err != nil {
		return fmt.Errorf("invalid auth settings: %w", err)
	}
	return nil
}

// NeedsRedis reports whether any backend talks to Redis
func (c *Config) NeedsRedis() bool {
	return c.Store == StoreRedis || c.Events == EventsRedis
}
