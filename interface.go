package ordauth

import (
	"context"
)

// Client represents the public interface for talking to an ordauth server
type Client interface {
	// Challenge returns a fresh challenge and the sealed token to send back on login
	Challenge(ctx context.Context) (*ChallengeResponse, error)

	// Login exchanges a signed challenge for a session
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Logout revokes the session
	Logout(ctx context.Context, sessionToken string) error

	// Me returns the address bound to the session
	Me(ctx context.Context, sessionToken string) (*MeResponse, error)
}
