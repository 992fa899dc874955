package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/GoArmGo/SnapShowdown/internal/messaging/payloads"
	"github.com/google/uuid"
)

// NotificationUseCase is the notification outbox. It implements Notifier for
// the other use cases and exposes the read side to the API.
type NotificationUseCase interface {
	Notifier

	// ListUnread returns the user's unread notifications newest-first.
	ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)

	// MarkRead marks one notification read. Only the recipient may do so.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead marks every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationUseCase struct {
	notifications ports.NotificationStorage
	publisher     ports.NotificationPublisher
	logger        *slog.Logger
}

// NewNotificationUseCase creates a new NotificationUseCase. publisher may be
// nil when the broker is not configured; events are then skipped.
func NewNotificationUseCase(
	notifications ports.NotificationStorage,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notifications: notifications,
		publisher:     publisher,
		logger:        logger,
	}
}

// Notify writes the notification row and relays it to the broker. The row is
// the source of truth; a failed publish is logged and dropped.
func (uc *notificationUseCase) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if err := uc.notifications.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	if uc.publisher != nil {
		event := payloads.NotificationEvent{
			NotificationID: n.ID.String(),
			UserID:         n.UserID.String(),
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		}
		if err := uc.publisher.PublishNotificationEvent(ctx, event); err != nil {
			uc.logger.Warn("failed to publish notification event", "notification_id", n.ID, "error", err)
		}
	}

	return nil
}

func (uc *notificationUseCase) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	list, err := uc.notifications.ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return list, nil
}

func (uc *notificationUseCase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := uc.notifications.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("looking up notification: %w", err)
	}
	if n == nil {
		return fmt.Errorf("%w: notification not found", domain.ErrNotFound)
	}
	if n.UserID != userID {
		return fmt.Errorf("%w: not your notification", domain.ErrForbidden)
	}

	// Marking an already read notification again is a no-op.
	if n.IsRead {
		return nil
	}

	if err := uc.notifications.MarkRead(ctx, n.ID); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (uc *notificationUseCase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := uc.notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}
