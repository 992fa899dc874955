package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

// CommentUseCase appends and lists comments on photos.
type CommentUseCase interface {
	// PostComment appends a comment to a photo the author is allowed to see.
	PostComment(ctx context.Context, authorID, photoID uuid.UUID, content string) (*domain.Comment, error)

	// ListComments returns the photo's active comments in chronological order,
	// subject to the same visibility rule as the photo itself.
	ListComments(ctx context.Context, viewer *domain.User, photoID uuid.UUID) ([]domain.Comment, error)
}

type commentUseCase struct {
	users    ports.UserStorage
	photos   ports.PhotoStorage
	comments ports.CommentStorage
	notifier Notifier
	logger   *slog.Logger
}

// NewCommentUseCase creates a new CommentUseCase.
func NewCommentUseCase(
	users ports.UserStorage,
	photos ports.PhotoStorage,
	comments ports.CommentStorage,
	notifier Notifier,
	logger *slog.Logger,
) CommentUseCase {
	return &commentUseCase{
		users:    users,
		photos:   photos,
		comments: comments,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *commentUseCase) PostComment(ctx context.Context, authorID, photoID uuid.UUID, content string) (*domain.Comment, error) {
	author, err := uc.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("looking up author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrForbidden)
	}

	photo, err := uc.photos.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("looking up photo: %w", err)
	}
	if photo == nil {
		return nil, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}

	if !author.Role.Has(domain.CapabilityComment) {
		return nil, fmt.Errorf("%w: your role cannot comment", domain.ErrForbidden)
	}
	// Commenting follows photo visibility: the public comments on approved
	// photos, the owner and admins also on pending or rejected ones.
	if !photo.VisibleTo(author) {
		return nil, fmt.Errorf("%w: you cannot comment on this photo", domain.ErrForbidden)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", domain.ErrValidation)
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		UserID:     author.ID,
		PhotoID:    photo.ID,
		Content:    content,
		Status:     domain.CommentStatusActive,
		CreatedAt:  time.Now(),
		AuthorName: author.Username,
	}

	if err := uc.comments.AppendComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("saving comment: %w", err)
	}

	uc.logger.Info("comment posted", "photo_id", photo.ID, "author_id", author.ID)

	// The owner is not notified about their own comments.
	if photo.UserID != author.ID {
		if err := uc.notifier.Notify(ctx, photo.UserID, fmt.Sprintf("Your photo %q has a new comment.", photo.Title)); err != nil {
			uc.logger.Warn("failed to create notification", "user_id", photo.UserID, "error", err)
		}
	}

	return comment, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, viewer *domain.User, photoID uuid.UUID) ([]domain.Comment, error) {
	photo, err := uc.photos.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("looking up photo: %w", err)
	}
	if photo == nil || !photo.VisibleTo(viewer) {
		return nil, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}

	comments, err := uc.comments.ListActiveByPhoto(ctx, photo.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}
