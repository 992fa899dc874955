package ports

import (
	"context"

	"github.com/GoArmGo/SnapShowdown/internal/messaging/payloads"
)

// NotificationPublisher publishes notification events to the broker. Used by
// the notification outbox after the row is written; publishing is best-effort
// and never affects the primary mutation.
type NotificationPublisher interface {
	PublishNotificationEvent(ctx context.Context, payload payloads.NotificationEvent) error
}

// NotificationConsumer consumes notification events in worker mode.
type NotificationConsumer interface {
	// StartConsumingNotificationEvents begins listening on the queue and
	// invokes the handler for every received event.
	StartConsumingNotificationEvents(ctx context.Context, handler func(context.Context, payloads.NotificationEvent) error) error
}
