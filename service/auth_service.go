package service

import (
	"context"
	"fmt"

	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/internal/bsv"
	"github.com/layer-3/ordauth/ports"
	"github.com/rs/zerolog"
)

// AuthService handles authentication business logic
type AuthService struct {
	tokenizer ports.Tokenizer
	eventPub  ports.EventPublisher
	logger    zerolog.Logger

	issuer   *ChallengeIssuer
	verifier *Verifier
	ledger   *Ledger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	cfg Config,
	opts ...Option,
) (*AuthService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &AuthService{
		tokenizer: tokenizer,
		eventPub:  eventPub,
		logger:    o.logger.With().Str("component", "auth").Logger(),
		issuer:    NewChallengeIssuer(cfg.ChallengePrefix, cfg.ChallengeTTL, o.now),
		verifier:  NewVerifier(o.now),
		ledger:    NewLedger(store, cfg, o.now),
	}, nil
}

// Ledger exposes the session ledger for callers that need the typed results.
func (s *AuthService) Ledger() *Ledger {
	return s.ledger
}

// CreateChallenge generates a new authentication challenge and seals it
// into a token the client hands back on login
func (s *AuthService) CreateChallenge(ctx context.Context) (core.Challenge, string, error) {
	challenge := s.issuer.IssueChallenge()

	token, err := s.tokenizer.ChallengeToToken(&challenge)
	if err != nil {
		return core.Challenge{}, "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Debug().
		Str("challenge_id", challenge.ID).
		Time("expires_at", challenge.ExpiresAt).
		Msg("challenge issued")

	return challenge, token, nil
}

// Login authenticates an address using its signature over a sealed challenge
func (s *AuthService) Login(ctx context.Context, challengeToken, address, signature string) (core.Session, error) {
	challenge, err := s.tokenizer.TokenToChallenge(challengeToken)
	if err != nil {
		return core.Session{}, fmt.Errorf("invalid challenge token: %w", err)
	}

	addr, err := bsv.ParseAddress(address)
	if err != nil {
		return core.Session{}, fmt.Errorf("%w: %v", core.ErrMalformedInput, err)
	}
	canonical := addr.String()
	log := s.logger.With().Str("address", canonical).Str("challenge_id", challenge.ID).Logger()

	decision, err := s.ledger.RecordAttempt(ctx, canonical)
	if err != nil {
		return core.Session{}, err
	}
	if !decision.Allowed() {
		log.Warn().Dur("retry_after", decision.RetryAfter).Msg("login rate limited")
		if err := s.eventPub.PublishRateLimited(ctx, canonical, decision.RetryAfter); err != nil {
			log.Warn().Err(err).Msg("failed to publish rate limit event")
		}
		return core.Session{}, &core.RateLimitedError{Address: canonical, RetryAfter: decision.RetryAfter}
	}

	result := s.verifier.Verify(canonical, *challenge, signature)
	if result == core.Valid || result == core.InvalidSignature {
		// Only signatures that were actually checked burn the challenge.
		fresh, err := s.ledger.ConsumeChallenge(ctx, *challenge)
		if err != nil {
			return core.Session{}, err
		}
		if !fresh {
			log.Warn().Msg("challenge replayed")
			return core.Session{}, core.ErrChallengeReused
		}
	}
	if result != core.Valid {
		log.Info().Str("result", result.String()).Int("remaining", decision.Remaining).Msg("login rejected")
		return core.Session{}, result.Err()
	}

	session, err := s.ledger.CreateSession(ctx, canonical)
	if err != nil {
		return core.Session{}, err
	}

	log.Info().Str("session_id", session.ID).Time("expires_at", session.ExpiresAt).Msg("login succeeded")
	if err := s.eventPub.PublishLogin(ctx, session); err != nil {
		log.Warn().Err(err).Msg("failed to publish login event")
	}

	return session, nil
}

// ValidateSession returns the active session behind token
func (s *AuthService) ValidateSession(ctx context.Context, token string) (core.Session, error) {
	session, status, err := s.ledger.Validate(ctx, token)
	if err != nil {
		return core.Session{}, err
	}

	switch status {
	case core.SessionActive:
		return session, nil
	case core.SessionExpired:
		return core.Session{}, core.ErrSessionExpired
	default:
		return core.Session{}, core.ErrSessionNotFound
	}
}

// Logout revokes a session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, status, err := s.ledger.Validate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.ledger.Revoke(ctx, token); err != nil {
		return err
	}
	if status != core.SessionActive {
		return nil
	}

	s.logger.Info().Str("address", session.Address).Str("session_id", session.ID).Msg("logout")

	// Publish logout event for cross-instance notifications
	if err := s.eventPub.PublishLogout(ctx, session.Address, session.ID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("failed to publish logout event")
	}

	return nil
}

// Authenticate runs the whole flow in process: it issues a challenge, asks
// provider to sign it and logs the provider's address in.
func (s *AuthService) Authenticate(ctx context.Context, provider ports.SigningProvider) (core.Session, error) {
	challenge, token, err := s.CreateChallenge(ctx)
	if err != nil {
		return core.Session{}, err
	}

	signature, err := provider.SignMessage(ctx, challenge.Value)
	if err != nil {
		return core.Session{}, fmt.Errorf("signing provider failed: %w", err)
	}

	return s.Login(ctx, token, provider.Address(), signature)
}
