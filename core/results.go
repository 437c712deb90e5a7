package core

import "time"

// VerificationResult is the outcome of checking a signature against a challenge.
type VerificationResult int

const (
	Valid VerificationResult = iota
	InvalidSignature
	ExpiredChallenge
	MalformedInput
)

func (r VerificationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case InvalidSignature:
		return "invalid_signature"
	case ExpiredChallenge:
		return "expired_challenge"
	case MalformedInput:
		return "malformed_input"
	default:
		return "unknown"
	}
}

// Err maps a failed result to its sentinel error. Valid maps to nil.
func (r VerificationResult) Err() error {
	switch r {
	case Valid:
		return nil
	case ExpiredChallenge:
		return ErrExpiredChallenge
	case MalformedInput:
		return ErrMalformedInput
	default:
		return ErrInvalidSignature
	}
}

// AttemptStatus tells whether an address may try to authenticate.
type AttemptStatus int

const (
	AttemptAllowed AttemptStatus = iota
	AttemptRateLimited
)

func (s AttemptStatus) String() string {
	if s == AttemptRateLimited {
		return "rate_limited"
	}
	return "allowed"
}

// AttemptDecision is returned by the rate limiter for every recorded attempt.
type AttemptDecision struct {
	Status     AttemptStatus
	Remaining  int           // attempts left in the window while allowed
	RetryAfter time.Duration // time until the window resets while rate limited
}

// Allowed is a shorthand for Status == AttemptAllowed.
func (d AttemptDecision) Allowed() bool {
	return d.Status == AttemptAllowed
}

// SessionStatus is the outcome of a session lookup.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionExpired
	SessionNotFound
)

func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionExpired:
		return "expired"
	default:
		return "not_found"
	}
}
