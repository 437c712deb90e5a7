package ordauth

import "time"

// ChallengeResponse is returned by POST /auth/challenge
type ChallengeResponse struct {
	Challenge      string    `json:"challenge"`
	ChallengeToken string    `json:"challenge_token"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	ChallengeToken string `json:"challenge_token" binding:"required"`
	Address        string `json:"address" binding:"required,bsvaddr"`
	Signature      string `json:"signature" binding:"required"`
}

// LoginResponse is returned by POST /auth/login
type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	Address      string    `json:"address"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LogoutRequest is the body of POST /auth/logout
type LogoutRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
}

// MeResponse is returned by GET /api/me
type MeResponse struct {
	Address   string    `json:"address"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error             string `json:"error"`
	Code              string `json:"code,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}
