package ports

import (
	"context"
	"time"

	"github.com/layer-3/ordauth/core"
)

// EventPublisher publishes authentication events to other instances
type EventPublisher interface {
	PublishLogin(ctx context.Context, session core.Session) error
	PublishLogout(ctx context.Context, address string, sessionID string) error
	PublishRateLimited(ctx context.Context, address string, retryAfter time.Duration) error
}
