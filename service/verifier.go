package service

import (
	"strings"
	"time"

	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/internal/bsv"
)

// Verifier checks that a signature over a challenge was made by the key
// behind a claimed address. It holds no state besides its clock.
type Verifier struct {
	now func() time.Time
}

// NewVerifier creates a verifier. A nil now uses the wall clock.
func NewVerifier(now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{now: now}
}

// Verify recovers the signing key from signature and compares it with
// address. Expiry is checked before any cryptography, so an expired
// challenge is reported even for a correct signature.
func (v *Verifier) Verify(address string, challenge core.Challenge, signature string) core.VerificationResult {
	if strings.TrimSpace(signature) == "" || challenge.Value == "" {
		return core.MalformedInput
	}
	if challenge.Expired(v.now()) {
		return core.ExpiredChallenge
	}

	addr, err := bsv.ParseAddress(address)
	if err != nil {
		return core.MalformedInput
	}
	sig, err := bsv.DecodeSignature(signature)
	if err != nil {
		return core.MalformedInput
	}

	if bsv.VerifyMessage(addr, challenge.Value, sig) {
		return core.Valid
	}
	return core.InvalidSignature
}
