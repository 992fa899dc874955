package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// NotificationStorage persists notification rows with GORM.
type NotificationStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewNotificationStorage(db *gorm.DB, logger *slog.Logger) *NotificationStorage {
	return &NotificationStorage{db: db, logger: logger}
}

func (s *NotificationStorage) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(n)
	if result.Error != nil {
		s.logger.Error("failed to create notification", "user_id", n.UserID, "error", result.Error)
		return fmt.Errorf("creating notification: %w", result.Error)
	}
	return nil
}

func (s *NotificationStorage) GetNotificationByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var n domain.Notification
	result := s.db.WithContext(ctx).First(&n, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting notification by id: %w", result.Error)
	}
	return &n, nil
}

func (s *NotificationStorage) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var list []domain.Notification
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&list)
	if result.Error != nil {
		return nil, fmt.Errorf("listing unread notifications: %w", result.Error)
	}
	return list, nil
}

func (s *NotificationStorage) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("marking notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification not found", domain.ErrNotFound)
	}
	return nil
}

func (s *NotificationStorage) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("marking all notifications read: %w", result.Error)
	}
	return nil
}
