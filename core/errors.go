package core

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrMalformedInput   = errors.New("malformed input: send the full 65-byte signature (base64 or hex) and a P2PKH address")
	ErrExpiredChallenge = errors.New("challenge expired: request a new challenge and sign it")
	ErrInvalidSignature = errors.New("invalid signature: it was not made by the key of the claimed address")
	ErrChallengeReused  = errors.New("challenge already used: request a new challenge")
	ErrRateLimited      = errors.New("too many failed attempts")
	ErrInvalidToken     = errors.New("invalid token")
	ErrSessionExpired   = errors.New("session expired: sign in again")
	ErrSessionNotFound  = errors.New("session not found: sign in again")
)

// RateLimitedError carries how long the caller has to wait.
type RateLimitedError struct {
	Address    string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: wait %ds before trying again", ErrRateLimited, e.RetrySeconds())
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// RetrySeconds rounds RetryAfter up to whole seconds, never below one.
func (e *RateLimitedError) RetrySeconds() int {
	secs := int(math.Ceil(e.RetryAfter.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// Stable machine-readable codes, used on the wire.
const (
	CodeMalformedInput   = "malformed_input"
	CodeExpiredChallenge = "expired_challenge"
	CodeInvalidSignature = "invalid_signature"
	CodeChallengeReused  = "challenge_reused"
	CodeRateLimited      = "rate_limited"
	CodeInvalidToken     = "invalid_token"
	CodeSessionExpired   = "session_expired"
	CodeSessionNotFound  = "session_not_found"
)

var codes = []struct {
	code string
	err  error
}{
	{CodeMalformedInput, ErrMalformedInput},
	{CodeExpiredChallenge, ErrExpiredChallenge},
	{CodeInvalidSignature, ErrInvalidSignature},
	{CodeChallengeReused, ErrChallengeReused},
	{CodeRateLimited, ErrRateLimited},
	{CodeInvalidToken, ErrInvalidToken},
	{CodeSessionExpired, ErrSessionExpired},
	{CodeSessionNotFound, ErrSessionNotFound},
}

// ErrorCode returns the wire code of err, or "" if it is not a known sentinel.
func ErrorCode(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ErrorFromCode is the inverse of ErrorCode.
func ErrorFromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
