package core

import "time"

// Challenge represents an authentication challenge
type Challenge struct {
	ID        string    // Unique identifier, used as the sealed token ID
	Value     string    // Text the wallet signs
	Nonce     string    // Random hex nonce embedded in Value
	IssuedAt  time.Time // When the challenge was created
	ExpiresAt time.Time // When the challenge expires
}

// Expired reports whether the challenge can no longer be used at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Session represents an authenticated wallet session
type Session struct {
	ID        string    // Unique session identifier, safe to log
	Token     string    // Opaque bearer capability handed to the caller
	Address   string    // Canonical address proven by the signature
	CreatedAt time.Time // When the session was created
	ExpiresAt time.Time // When the session stops being valid
}

// Expired reports whether the session lifetime has run out at now. A
// session is no longer valid from ExpiresAt onwards.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TTL returns the remaining lifetime at now, or zero once expired.
func (s Session) TTL(now time.Time) time.Duration {
	if remaining := s.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// AttemptRecord counts authentication attempts for one address
type AttemptRecord struct {
	Address     string    `json:"address"`
	Count       int       `json:"count"`
	WindowStart time.Time `json:"window_start"`
}
