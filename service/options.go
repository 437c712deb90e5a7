package service

import (
	"time"

	"github.com/rs/zerolog"
)

type options struct {
	now    func() time.Time
	logger zerolog.Logger
}

func defaultOptions() options {
	return options{
		now:    time.Now,
		logger: zerolog.Nop(),
	}
}

// Option configures an AuthService
type Option func(*options)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for audit lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
