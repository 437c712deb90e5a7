package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/ports"
)

// Topics the publisher writes to
const (
	TopicLogin       = "ordauth.login"
	TopicLogout      = "ordauth.logout"
	TopicRateLimited = "ordauth.rate_limited"
)

// LoginEvent is published after a successful signature verification
type LoginEvent struct {
	Address   string    `json:"address"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LogoutEvent represents a logout event
type LogoutEvent struct {
	Address   string `json:"address"`
	SessionID string `json:"session_id"`
}

// RateLimitedEvent is published when an address hits the attempt limit
type RateLimitedEvent struct {
	Address           string `json:"address"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a login event
func (p *WatermillPublisher) PublishLogin(ctx context.Context, session core.Session) error {
	return p.publish(ctx, TopicLogin, session.ID, LoginEvent{
		Address:   session.Address,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	})
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, address string, sessionID string) error {
	return p.publish(ctx, TopicLogout, sessionID, LogoutEvent{
		Address:   address,
		SessionID: sessionID,
	})
}

// PublishRateLimited publishes a rate-limit event
func (p *WatermillPublisher) PublishRateLimited(ctx context.Context, address string, retryAfter time.Duration) error {
	rl := core.RateLimitedError{RetryAfter: retryAfter}
	return p.publish(ctx, TopicRateLimited, watermill.NewUUID(), RateLimitedEvent{
		Address:           address,
		RetryAfterSeconds: rl.RetrySeconds(),
	})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic, id string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(id, payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NoopPublisher drops every event; used when no broker is configured
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishLogin(context.Context, core.Session) error { return nil }

func (NoopPublisher) PublishLogout(context.Context, string, string) error { return nil }

func (NoopPublisher) PublishRateLimited(context.Context, string, time.Duration) error { return nil }
