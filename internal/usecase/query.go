package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultGalleryPageSize  = 12
	defaultLeaderboardLimit = 20
	winnersCount            = 3
)

// PhotoDetail is a photo plus everything the detail page needs: the author's
// display name, the active comments and the viewer's permission flags.
type PhotoDetail struct {
	Photo      domain.Photo     `json:"photo"`
	AuthorName string           `json:"author_name"`
	Comments   []domain.Comment `json:"comments"`
	CanVote    bool             `json:"can_vote"`
	CanComment bool             `json:"can_comment"`
	CanEdit    bool             `json:"can_edit"`
}

// UserPhotos is a user's own entries with per-status tallies for the
// profile page.
type UserPhotos struct {
	Photos        []domain.Photo `json:"photos"`
	ApprovedCount int            `json:"approved_count"`
	PendingCount  int            `json:"pending_count"`
	RejectedCount int            `json:"rejected_count"`
	TotalVotes    int            `json:"total_votes"`
}

// QueryUseCase serves the read side: gallery, leaderboard, winners and the
// photo detail page.
type QueryUseCase interface {
	// Gallery returns approved photos ordered by votes, paginated. page is
	// 1-based; non-positive page or pageSize fall back to defaults.
	Gallery(ctx context.Context, page, pageSize int) ([]domain.Photo, error)

	// Leaderboard returns the top approved photos by vote count.
	Leaderboard(ctx context.Context, limit int) ([]domain.Photo, error)

	// PreviousWinners returns the top three approved photos.
	PreviousWinners(ctx context.Context) ([]domain.Photo, error)

	// PhotoDetail returns the detail view for the viewer, or NotFound when
	// the photo does not exist or is not visible to them.
	PhotoDetail(ctx context.Context, viewer *domain.User, photoID uuid.UUID) (*PhotoDetail, error)

	// ListUserPhotos returns all of the user's own photos with tallies.
	ListUserPhotos(ctx context.Context, userID uuid.UUID) (*UserPhotos, error)

	// ListByStatus returns all photos in a status for the admin dashboard.
	ListByStatus(ctx context.Context, admin *domain.User, status domain.PhotoStatus) ([]domain.Photo, error)
}

type queryUseCase struct {
	users    ports.UserStorage
	photos   ports.PhotoStorage
	ledger   ports.VoteLedger
	comments ports.CommentStorage
	logger   *slog.Logger
}

// NewQueryUseCase creates a new QueryUseCase.
func NewQueryUseCase(
	users ports.UserStorage,
	photos ports.PhotoStorage,
	ledger ports.VoteLedger,
	comments ports.CommentStorage,
	logger *slog.Logger,
) QueryUseCase {
	return &queryUseCase{
		users:    users,
		photos:   photos,
		ledger:   ledger,
		comments: comments,
		logger:   logger,
	}
}

func (uc *queryUseCase) Gallery(ctx context.Context, page, pageSize int) ([]domain.Photo, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultGalleryPageSize
	}

	photos, err := uc.photos.ListApprovedByVotes(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing gallery: %w", err)
	}
	return photos, nil
}

func (uc *queryUseCase) Leaderboard(ctx context.Context, limit int) ([]domain.Photo, error) {
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}

	photos, err := uc.photos.ListApprovedByVotes(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing leaderboard: %w", err)
	}
	return photos, nil
}

func (uc *queryUseCase) PreviousWinners(ctx context.Context) ([]domain.Photo, error) {
	photos, err := uc.photos.ListApprovedByVotes(ctx, winnersCount, 0)
	if err != nil {
		return nil, fmt.Errorf("listing winners: %w", err)
	}
	return photos, nil
}

func (uc *queryUseCase) PhotoDetail(ctx context.Context, viewer *domain.User, photoID uuid.UUID) (*PhotoDetail, error) {
	photo, err := uc.photos.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("looking up photo: %w", err)
	}
	// A hidden photo is indistinguishable from a missing one.
	if photo == nil || !photo.VisibleTo(viewer) {
		return nil, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}

	author, err := uc.users.GetUserByID(ctx, photo.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up author: %w", err)
	}

	comments, err := uc.comments.ListActiveByPhoto(ctx, photo.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	detail := &PhotoDetail{
		Photo:    *photo,
		Comments: comments,
	}
	if author != nil {
		detail.AuthorName = author.Username
	}

	if viewer != nil {
		isOwner := viewer.ID == photo.UserID
		isAdmin := viewer.Role.Has(domain.CapabilityModerate)

		detail.CanComment = viewer.Role.Has(domain.CapabilityComment) && photo.VisibleTo(viewer)
		detail.CanEdit = (isOwner || isAdmin) && photo.Status == domain.PhotoStatusPending

		if viewer.Role.Has(domain.CapabilityVote) && !isOwner && photo.Status == domain.PhotoStatusApproved {
			voted, err := uc.ledger.HasVoted(ctx, viewer.ID, photo.ID)
			if err != nil {
				return nil, fmt.Errorf("checking existing vote: %w", err)
			}
			detail.CanVote = !voted
		}
	}

	return detail, nil
}

func (uc *queryUseCase) ListUserPhotos(ctx context.Context, userID uuid.UUID) (*UserPhotos, error) {
	photos, err := uc.photos.ListPhotosByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user photos: %w", err)
	}

	result := &UserPhotos{Photos: photos}
	for _, p := range photos {
		switch p.Status {
		case domain.PhotoStatusApproved:
			result.ApprovedCount++
		case domain.PhotoStatusPending:
			result.PendingCount++
		case domain.PhotoStatusRejected:
			result.RejectedCount++
		}
		result.TotalVotes += p.VotesCount
	}

	return result, nil
}

func (uc *queryUseCase) ListByStatus(ctx context.Context, admin *domain.User, status domain.PhotoStatus) ([]domain.Photo, error) {
	if admin == nil || !admin.Role.Has(domain.CapabilityModerate) {
		return nil, fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}

	photos, err := uc.photos.ListPhotosByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing photos by status: %w", err)
	}
	return photos, nil
}
