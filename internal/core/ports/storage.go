package ports

import (
	"context"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

// UserStorage defines persistence for user accounts.
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UsernameTaken checks whether another user already uses the username.
	UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// PhotoStorage defines persistence for photos and their moderation status.
type PhotoStorage interface {
	SavePhoto(ctx context.Context, photo *domain.Photo) error
	GetPhotoByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	UpdatePhotoStatus(ctx context.Context, id uuid.UUID, status domain.PhotoStatus) error
	UpdatePhotoDetails(ctx context.Context, id uuid.UUID, title, description string) error
	// ListApprovedByVotes returns approved photos ordered by votes_count DESC
	// with id ASC as the stable tie-break.
	ListApprovedByVotes(ctx context.Context, limit, offset int) ([]domain.Photo, error)
	ListPhotosByUser(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error)
	ListPhotosByStatus(ctx context.Context, status domain.PhotoStatus) ([]domain.Photo, error)
}

// VoteLedger defines the transactional vote store. InsertVote must write the
// vote row and increment the photo's votes_count in a single transaction; a
// unique-constraint violation on (user_id, photo_id) is returned as
// domain.ErrConflict and is the authoritative duplicate signal.
type VoteLedger interface {
	InsertVote(ctx context.Context, voterID, photoID uuid.UUID) (votesCount int, err error)
	HasVoted(ctx context.Context, voterID, photoID uuid.UUID) (bool, error)
	CountVotes(ctx context.Context, photoID uuid.UUID) (int, error)
}

// CommentStorage defines the append-only comment log.
type CommentStorage interface {
	AppendComment(ctx context.Context, comment *domain.Comment) error
	// ListActiveByPhoto returns active comments in chronological order with
	// the author display name resolved.
	ListActiveByPhoto(ctx context.Context, photoID uuid.UUID) ([]domain.Comment, error)
}

// NotificationStorage defines the notification outbox rows.
type NotificationStorage interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	GetNotificationByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	// ListUnread returns unread notifications newest-first.
	ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
