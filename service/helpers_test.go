package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/layer-3/ordauth/adapters/store"
	"github.com/layer-3/ordauth/adapters/tokenizer"
	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/internal/bsv"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newWallet(t *testing.T) bsv.WIF {
	t.Helper()
	w, err := bsv.NewWIF(false)
	require.NoError(t, err)
	return w
}

type recordingPublisher struct {
	mu          sync.Mutex
	logins      []core.Session
	logouts     []string
	rateLimited []string
}

func (p *recordingPublisher) PublishLogin(_ context.Context, session core.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, session)
	return nil
}

func (p *recordingPublisher) PublishLogout(_ context.Context, _ string, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logouts = append(p.logouts, sessionID)
	return nil
}

func (p *recordingPublisher) PublishRateLimited(_ context.Context, address string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rateLimited = append(p.rateLimited, address)
	return nil
}

type testEnv struct {
	clock  *fakeClock
	store  *store.MemoryStore
	events *recordingPublisher
	svc    *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	clock := newFakeClock()
	st := store.NewMemoryStore(store.WithClock(clock.Now))
	events := &recordingPublisher{}

	svc, err := NewAuthService(tokenizer.NewJWTTokenizer(key), st, events, DefaultConfig(), WithClock(clock.Now))
	require.NoError(t, err)

	return &testEnv{clock: clock, store: st, events: events, svc: svc}
}
