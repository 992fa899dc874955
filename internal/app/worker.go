package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/messaging/payloads"
)

// runWorker consumes notification events from RabbitMQ. The database row is
// already written by the time an event arrives; the worker is the hook for
// out-of-band delivery channels and currently records the delivery.
func (a *App) runWorker(ctx context.Context) error {
	if a.consumer == nil {
		return fmt.Errorf("worker mode requires RABBITMQ_URL to be set")
	}

	a.logger.Info("worker started, waiting for notification events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	eventHandler := func(ctx context.Context, payload payloads.NotificationEvent) error {
		a.logger.Info("notification event delivered",
			"notification_id", payload.NotificationID,
			"user_id", payload.UserID,
			"message", payload.Message,
		)
		return nil
	}

	if err := a.consumer.StartConsumingNotificationEvents(workerCtx, eventHandler); err != nil {
		return fmt.Errorf("starting notification consumer: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received, stopping worker")

	cancelWorker()

	// Give in-flight messages a moment to ack before the connection closes.
	time.Sleep(2 * time.Second)
	a.logger.Info("worker stopped")
	return nil
}
