package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/layer-3/ordauth/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestPublishLogin(t *testing.T) {
	ps := newPubSub(t)
	ctx := context.Background()

	messages, err := ps.Subscribe(ctx, TopicLogin)
	require.NoError(t, err)

	expires := time.Unix(1_700_001_800, 0).UTC()
	pub := NewWatermillPublisher(ps)
	require.NoError(t, pub.PublishLogin(ctx, core.Session{
		ID:        "sid",
		Token:     "secret",
		Address:   "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
		ExpiresAt: expires,
	}))

	msg := receive(t, messages)
	assert.Equal(t, "sid", msg.UUID)
	assert.NotContains(t, string(msg.Payload), "secret")

	var event LoginEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", event.Address)
	assert.True(t, expires.Equal(event.ExpiresAt))
}

func TestPublishLogoutAndRateLimited(t *testing.T) {
	ps := newPubSub(t)
	ctx := context.Background()

	logouts, err := ps.Subscribe(ctx, TopicLogout)
	require.NoError(t, err)
	limits, err := ps.Subscribe(ctx, TopicRateLimited)
	require.NoError(t, err)

	pub := NewWatermillPublisher(ps)
	require.NoError(t, pub.PublishLogout(ctx, "1abc", "sid"))
	require.NoError(t, pub.PublishRateLimited(ctx, "1abc", 90*time.Second))

	var logout LogoutEvent
	require.NoError(t, json.Unmarshal(receive(t, logouts).Payload, &logout))
	assert.Equal(t, LogoutEvent{Address: "1abc", SessionID: "sid"}, logout)

	var limited RateLimitedEvent
	require.NoError(t, json.Unmarshal(receive(t, limits).Payload, &limited))
	assert.Equal(t, 90, limited.RetryAfterSeconds)
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                             { return nil }

func TestPublishErrorIsWrapped(t *testing.T) {
	pub := NewWatermillPublisher(failingPublisher{})
	err := pub.PublishLogout(context.Background(), "1abc", "sid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.With(watermill.LogFields{"topic": TopicLogin}).Info("published", watermill.LogFields{"n": 1})
	adapter.Error("failed", errors.New("boom"), nil)

	out := buf.String()
	assert.Contains(t, out, `"topic":"ordauth.login"`)
	assert.Contains(t, out, `"component":"watermill"`)
	assert.Contains(t, out, `"error":"boom"`)
}
