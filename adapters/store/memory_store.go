package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/ports"
)

// ExpiredSessionRetention is how long an expired session is kept around so
// that a lookup can still tell "expired" apart from "never existed".
const ExpiredSessionRetention = time.Hour

const sweepInterval = time.Minute

type attemptEntry struct {
	rec       core.AttemptRecord
	expiresAt time.Time
}

var _ ports.Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of the Store interface.
// Nothing runs in the background: stale entries are pruned when the store
// is touched.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]core.Session
	attempts  map[string]attemptEntry
	nonces    map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for pruning.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]core.Session),
		attempts: make(map[string]attemptEntry),
		nonces:   make(map[string]time.Time),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveSession stores a copy of session under its token
func (s *MemoryStore) SaveSession(ctx context.Context, session core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(s.now())
	s.sessions[session.Token] = session
	return nil
}

// GetSession returns a copy of the stored session
func (s *MemoryStore) GetSession(ctx context.Context, token string) (core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return core.Session{}, core.ErrSessionNotFound
	}
	return session, nil
}

// DeleteSession removes a session
func (s *MemoryStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// UpdateAttempts applies fn to the attempt record of address under the store lock
func (s *MemoryStore) UpdateAttempts(ctx context.Context, address string, ttl time.Duration, fn func(rec *core.AttemptRecord)) (core.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	entry, ok := s.attempts[address]
	if ok && now.After(entry.expiresAt) {
		entry = attemptEntry{}
	}

	rec := entry.rec
	fn(&rec)

	if rec.Count == 0 {
		delete(s.attempts, address)
		return rec, nil
	}

	s.attempts[address] = attemptEntry{rec: rec, expiresAt: now.Add(ttl)}
	return rec, nil
}

// ResetAttempts forgets all attempts of address
func (s *MemoryStore) ResetAttempts(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, address)
	return nil
}

// ConsumeNonce marks a challenge nonce as used
func (s *MemoryStore) ConsumeNonce(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	if expiresAt, ok := s.nonces[nonce]; ok && !now.After(expiresAt) {
		return false, nil
	}

	s.nonces[nonce] = now.Add(ttl)
	return true, nil
}

// sweepLocked drops entries nobody can observe any more. Callers hold s.mu.
func (s *MemoryStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now

	for token, session := range s.sessions {
		if now.Sub(session.ExpiresAt) > ExpiredSessionRetention {
			delete(s.sessions, token)
		}
	}
	for address, entry := range s.attempts {
		if now.After(entry.expiresAt) {
			delete(s.attempts, address)
		}
	}
	for nonce, expiresAt := range s.nonces {
		if now.After(expiresAt) {
			delete(s.nonces, nonce)
		}
	}
}
