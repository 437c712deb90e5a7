package ports

import (
	"context"
	"time"

	"github.com/layer-3/ordauth/core"
)

// SessionStore keeps sessions by their opaque token
type SessionStore interface {
	SaveSession(ctx context.Context, session core.Session) error
	// GetSession returns core.ErrSessionNotFound when the token is unknown.
	GetSession(ctx context.Context, token string) (core.Session, error)
	// DeleteSession is a no-op for unknown tokens.
	DeleteSession(ctx context.Context, token string) error
}

// AttemptStore keeps per-address attempt counters
type AttemptStore interface {
	// UpdateAttempts loads the record for address (zero if absent), hands it
	// to fn and persists the result, atomically with respect to other callers
	// for the same address. fn may run more than once. A record left with a
	// zero Count is deleted; others live for at most ttl.
	UpdateAttempts(ctx context.Context, address string, ttl time.Duration, fn func(rec *core.AttemptRecord)) (core.AttemptRecord, error)
	ResetAttempts(ctx context.Context, address string) error
}

// NonceStore remembers consumed challenge nonces
type NonceStore interface {
	// ConsumeNonce marks nonce as used for ttl. It reports false if the
	// nonce had already been consumed.
	ConsumeNonce(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

// Store is everything the session ledger persists
type Store interface {
	SessionStore
	AttemptStore
	NonceStore
}
