package ports

import "github.com/layer-3/ordauth/core"

// Tokenizer seals challenges into tamper-proof tokens so the server can stay
// stateless between issuing a challenge and verifying its signature
type Tokenizer interface {
	ChallengeToToken(challenge *core.Challenge) (string, error)
	// TokenToChallenge does not reject expired challenges; expiry is the
	// verifier's call.
	TokenToChallenge(token string) (*core.Challenge, error)
}
