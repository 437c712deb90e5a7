package store

import (
	"context"
	"testing"
	"time"

	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness builds a fresh store and a function that moves its clock forward.
type harness func(t *testing.T) (ports.Store, func(time.Duration))

func increment(rec *core.AttemptRecord) {
	rec.Count++
}

func runStoreContract(t *testing.T, newStore harness) {
	ctx := context.Background()

	t.Run("sessions", func(t *testing.T) {
		s, _ := newStore(t)
		now := time.Now().UTC().Truncate(time.Second)
		session := core.Session{
			ID:        "sid-1",
			Token:     "token-1",
			Address:   "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
			CreatedAt: now,
			ExpiresAt: now.Add(30 * time.Minute),
		}

		require.NoError(t, s.SaveSession(ctx, session))

		got, err := s.GetSession(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
		assert.Equal(t, session.Token, got.Token)
		assert.Equal(t, session.Address, got.Address)
		assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

		_, err = s.GetSession(ctx, "token-2")
		assert.ErrorIs(t, err, core.ErrSessionNotFound)

		require.NoError(t, s.DeleteSession(ctx, "token-1"))
		require.NoError(t, s.DeleteSession(ctx, "token-1"))
		_, err = s.GetSession(ctx, "token-1")
		assert.ErrorIs(t, err, core.ErrSessionNotFound)
	})

	t.Run("attempts", func(t *testing.T) {
		s, advance := newStore(t)
		addr := "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"

		for i := 1; i <= 3; i++ {
			rec, err := s.UpdateAttempts(ctx, addr, time.Minute, increment)
			require.NoError(t, err)
			assert.Equal(t, i, rec.Count)
		}

		var seen core.AttemptRecord
		_, err := s.UpdateAttempts(ctx, addr, time.Minute, func(rec *core.AttemptRecord) { seen = *rec })
		require.NoError(t, err)
		assert.Equal(t, 3, seen.Count)

		require.NoError(t, s.ResetAttempts(ctx, addr))
		rec, err := s.UpdateAttempts(ctx, addr, time.Minute, increment)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Count)

		advance(2 * time.Minute)
		rec, err = s.UpdateAttempts(ctx, addr, time.Minute, increment)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Count, "record should expire after ttl")
	})

	t.Run("zero count deletes", func(t *testing.T) {
		s, _ := newStore(t)
		addr := "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"

		_, err := s.UpdateAttempts(ctx, addr, time.Minute, increment)
		require.NoError(t, err)
		_, err = s.UpdateAttempts(ctx, addr, time.Minute, func(rec *core.AttemptRecord) { rec.Count = 0 })
		require.NoError(t, err)

		rec, err := s.UpdateAttempts(ctx, addr, time.Minute, func(*core.AttemptRecord) {})
		require.NoError(t, err)
		assert.Zero(t, rec.Count)
	})

	t.Run("nonces", func(t *testing.T) {
		s, advance := newStore(t)

		ok, err := s.ConsumeNonce(ctx, "abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ConsumeNonce(ctx, "abc", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.ConsumeNonce(ctx, "def", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		advance(2 * time.Minute)
		ok, err = s.ConsumeNonce(ctx, "abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "nonce should be pruned after ttl")
	})
}
