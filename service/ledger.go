package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/ports"
)

const sessionTokenBytes = 32

// Ledger owns sessions and the per-address attempt counters. Expiry is
// checked on access; nothing runs in the background.
type Ledger struct {
	store       ports.Store
	sessionTTL  time.Duration
	maxAttempts int
	cooldown    time.Duration
	now         func() time.Time
}

// NewLedger creates a ledger on top of store. A nil now uses the wall clock.
func NewLedger(store ports.Store, cfg Config, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		store:       store,
		sessionTTL:  cfg.SessionTTL,
		maxAttempts: cfg.MaxAttempts,
		cooldown:    cfg.CooldownWindow,
		now:         now,
	}
}

// RecordAttempt counts one authentication attempt for address. Once the
// counter reaches the limit the address is rate limited until the window
// started by its first attempt has passed; the counter stops growing
// meanwhile.
func (l *Ledger) RecordAttempt(ctx context.Context, address string) (core.AttemptDecision, error) {
	now := l.now()

	rec, err := l.store.UpdateAttempts(ctx, address, l.cooldown, func(rec *core.AttemptRecord) {
		if rec.Count > 0 && now.Sub(rec.WindowStart) >= l.cooldown {
			*rec = core.AttemptRecord{}
		}
		if rec.Count == 0 {
			rec.Address = address
			rec.WindowStart = now
		}
		if rec.Count < l.maxAttempts {
			rec.Count++
		}
	})
	if err != nil {
		return core.AttemptDecision{}, fmt.Errorf("failed to record attempt: %w", err)
	}

	if rec.Count >= l.maxAttempts {
		return core.AttemptDecision{
			Status:     core.AttemptRateLimited,
			RetryAfter: rec.WindowStart.Add(l.cooldown).Sub(now),
		}, nil
	}

	return core.AttemptDecision{
		Status:    core.AttemptAllowed,
		Remaining: l.maxAttempts - rec.Count - 1,
	}, nil
}

// CreateSession mints a session for address and forgives its failed attempts.
func (l *Ledger) CreateSession(ctx context.Context, address string) (core.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return core.Session{}, err
	}

	now := l.now()
	session := core.Session{
		ID:        uuid.New().String(),
		Token:     token,
		Address:   address,
		CreatedAt: now,
		ExpiresAt: now.Add(l.sessionTTL),
	}

	if err := l.store.SaveSession(ctx, session); err != nil {
		return core.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	if err := l.store.ResetAttempts(ctx, address); err != nil {
		return core.Session{}, fmt.Errorf("failed to reset attempts: %w", err)
	}

	return session, nil
}

// Validate looks a session up by token. An expired session is evicted and
// reported once as SessionExpired; later lookups see SessionNotFound.
func (l *Ledger) Validate(ctx context.Context, token string) (core.Session, core.SessionStatus, error) {
	if token == "" {
		return core.Session{}, core.SessionNotFound, nil
	}

	session, err := l.store.GetSession(ctx, token)
	if errors.Is(err, core.ErrSessionNotFound) {
		return core.Session{}, core.SessionNotFound, nil
	}
	if err != nil {
		return core.Session{}, core.SessionNotFound, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(l.now()) {
		if err := l.store.DeleteSession(ctx, token); err != nil {
			return core.Session{}, core.SessionExpired, fmt.Errorf("failed to evict session: %w", err)
		}
		return core.Session{}, core.SessionExpired, nil
	}

	return session, core.SessionActive, nil
}

// Revoke deletes the session behind token. Unknown tokens are ignored.
func (l *Ledger) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := l.store.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ConsumeChallenge marks the challenge nonce as used until the challenge
// expires. It reports false when the nonce was already consumed.
func (l *Ledger) ConsumeChallenge(ctx context.Context, challenge core.Challenge) (bool, error) {
	ttl := challenge.ExpiresAt.Sub(l.now())
	if ttl < time.Second {
		ttl = time.Second
	}

	fresh, err := l.store.ConsumeNonce(ctx, challenge.Nonce, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge: %w", err)
	}
	return fresh, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
