package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Config holds the tunables of the authenticator
type Config struct {
	ChallengeTTL    time.Duration
	SessionTTL      time.Duration
	MaxAttempts     int
	CooldownWindow  time.Duration
	ChallengePrefix string
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{
		ChallengeTTL:    5 * time.Minute,
		SessionTTL:      30 * time.Minute,
		MaxAttempts:     5,
		CooldownWindow:  5 * time.Minute,
		ChallengePrefix: "ORDINALRAINBOWS_AUTH",
	}
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.ChallengeTTL <= 0:
		return fmt.Errorf("challenge TTL must be positive, got %s", c.ChallengeTTL)
	case c.SessionTTL <= 0:
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	case c.CooldownWindow <= 0:
		return fmt.Errorf("cooldown window must be positive, got %s", c.CooldownWindow)
	case c.ChallengePrefix == "":
		return errors.New("challenge prefix must not be empty")
	case strings.ContainsFunc(c.ChallengePrefix, unicode.IsSpace):
		return fmt.Errorf("challenge prefix %q must not contain whitespace", c.ChallengePrefix)
	}
	return nil
}
