package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueChallengeFormat(t *testing.T) {
	clock := newFakeClock()
	issuer := NewChallengeIssuer("ORDINALRAINBOWS_AUTH", 5*time.Minute, clock.Now)

	c := issuer.IssueChallenge()

	pattern := fmt.Sprintf(`^ORDINALRAINBOWS_AUTH_%d_[0-9a-f]{32}$`, epoch.UnixMilli())
	assert.Regexp(t, regexp.MustCompile(pattern), c.Value)
	assert.Len(t, c.Nonce, 32)
	assert.Contains(t, c.Value, c.Nonce)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, epoch, c.IssuedAt)
	assert.Equal(t, epoch.Add(5*time.Minute), c.ExpiresAt)
}

func TestIssueChallengeIsUnique(t *testing.T) {
	issuer := NewChallengeIssuer("APP", time.Minute, newFakeClock().Now)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		c := issuer.IssueChallenge()
		require.False(t, seen[c.Value], "duplicate challenge %s", c.Value)
		seen[c.Value] = true
	}
}

func TestIssueChallengeWholeSeconds(t *testing.T) {
	clock := newFakeClock()
	clock.Advance(1500 * time.Millisecond)
	issuer := NewChallengeIssuer("APP", 5*time.Minute, clock.Now)

	c := issuer.IssueChallenge()

	assert.Equal(t, epoch.Add(time.Second), c.IssuedAt)
	assert.Equal(t, epoch.Add(time.Second+5*time.Minute), c.ExpiresAt)
	assert.Contains(t, c.Value, fmt.Sprintf("_%d_", epoch.Add(time.Second).UnixMilli()))
}
