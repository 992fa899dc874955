package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// CommentStorage persists the append-only comment log with GORM.
type CommentStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCommentStorage(db *gorm.DB, logger *slog.Logger) *CommentStorage {
	return &CommentStorage{db: db, logger: logger}
}

func (s *CommentStorage) AppendComment(ctx context.Context, comment *domain.Comment) error {
	start := time.Now()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(comment)
	if result.Error != nil {
		s.logger.Error("failed to save comment", "photo_id", comment.PhotoID, "error", result.Error)
		return fmt.Errorf("saving comment: %w", result.Error)
	}

	s.logger.Info("comment saved",
		"id", comment.ID,
		"photo_id", comment.PhotoID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListActiveByPhoto returns active comments oldest-first with the author's
// username joined in.
func (s *CommentStorage) ListActiveByPhoto(ctx context.Context, photoID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	result := s.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("comments.*, users.username AS author_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.photo_id = ? AND comments.status = ?", photoID, domain.CommentStatusActive).
		Order("comments.created_at ASC").
		Scan(&comments)
	if result.Error != nil {
		return nil, fmt.Errorf("listing comments: %w", result.Error)
	}
	return comments, nil
}
