package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhotoStatus is the moderation state of a photo. Every state is reachable
// from every other state through an admin transition.
type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

// Photo represents a contest entry,
// corresponds to the photos table. VotesCount is a denormalized counter and
// must always equal the number of vote rows for the photo.
type Photo struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Filename    string      `json:"filename" db:"filename"`
	Status      PhotoStatus `json:"status" db:"status"`
	VotesCount  int         `json:"votes_count" db:"votes_count"`
	UploadedAt  time.Time   `json:"uploaded_at" db:"uploaded_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}

// VisibleTo reports whether the viewer may see the photo. The public only
// sees approved photos; the owner and admins always see it. A nil viewer is
// an anonymous request.
func (p *Photo) VisibleTo(viewer *User) bool {
	if p.Status == PhotoStatusApproved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == p.UserID || viewer.Role.Has(CapabilityModerate)
}

// Vote associates a voter with a photo, at most once per (user, photo) pair.
// Immutable once created.
type Vote struct {
	ID      uuid.UUID `json:"id" db:"id"`
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	PhotoID uuid.UUID `json:"photo_id" db:"photo_id"`
	VotedAt time.Time `json:"voted_at" db:"voted_at"`
}

func (Vote) TableName() string {
	return "votes"
}

// CommentStatus is the lifecycle state of a comment. Only active is ever
// written here; flagged and removed are reserved for future moderation.
type CommentStatus string

const (
	CommentStatusActive  CommentStatus = "active"
	CommentStatusFlagged CommentStatus = "flagged"
	CommentStatusRemoved CommentStatus = "removed"
)

// Comment is an append-only remark on a photo,
// corresponds to the comments table.
type Comment struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.UUID     `json:"user_id" db:"user_id"`
	PhotoID   uuid.UUID     `json:"photo_id" db:"photo_id"`
	Content   string        `json:"content" db:"content"`
	Status    CommentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`

	// AuthorName is resolved from the users table on read; not a column.
	AuthorName string `json:"author_name" db:"author_name" gorm:"->"`
}

func (Comment) TableName() string {
	return "comments"
}

// Notification is a user-facing message created as a side effect of another
// mutation. Marking read is the only mutation and is irreversible.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
