package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/ordauth/core"
)

const nonceBytes = 16

// ChallengeIssuer produces single-use messages for a wallet to sign.
// It keeps no record of what it issued.
type ChallengeIssuer struct {
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewChallengeIssuer creates an issuer. A nil now uses the wall clock.
func NewChallengeIssuer(prefix string, ttl time.Duration, now func() time.Time) *ChallengeIssuer {
	if now == nil {
		now = time.Now
	}
	return &ChallengeIssuer{prefix: prefix, ttl: ttl, now: now}
}

// IssueChallenge returns a challenge of the form prefix_<unix millis>_<nonce>,
// issued on a whole second.
// It panics if the system random source fails.
func (i *ChallengeIssuer) IssueChallenge() core.Challenge {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("ordauth: reading random nonce: %v", err))
	}
	nonce := hex.EncodeToString(buf)

	// Sealed tokens carry whole seconds, so the challenge does too.
	now := i.now().Truncate(time.Second)
	return core.Challenge{
		ID:        uuid.New().String(),
		Value:     fmt.Sprintf("%s_%d_%s", i.prefix, now.UnixMilli(), nonce),
		Nonce:     nonce,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}
}
