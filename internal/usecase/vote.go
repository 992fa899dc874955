package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

// VoteUseCase records votes on approved photos.
type VoteUseCase interface {
	// CastVote records one vote by voterID on photoID and returns the photo's
	// new vote count. At most one vote per (voter, photo) pair ever succeeds;
	// the database unique constraint is the final arbiter under concurrency.
	CastVote(ctx context.Context, voterID, photoID uuid.UUID) (int, error)
}

type voteUseCase struct {
	users    ports.UserStorage
	photos   ports.PhotoStorage
	ledger   ports.VoteLedger
	notifier Notifier
	logger   *slog.Logger
}

// NewVoteUseCase creates a new VoteUseCase.
func NewVoteUseCase(
	users ports.UserStorage,
	photos ports.PhotoStorage,
	ledger ports.VoteLedger,
	notifier Notifier,
	logger *slog.Logger,
) VoteUseCase {
	return &voteUseCase{
		users:    users,
		photos:   photos,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *voteUseCase) CastVote(ctx context.Context, voterID, photoID uuid.UUID) (int, error) {
	voter, err := uc.users.GetUserByID(ctx, voterID)
	if err != nil {
		return 0, fmt.Errorf("looking up voter: %w", err)
	}
	if voter == nil {
		return 0, fmt.Errorf("%w: user not found", domain.ErrForbidden)
	}

	photo, err := uc.photos.GetPhotoByID(ctx, photoID)
	if err != nil {
		return 0, fmt.Errorf("looking up photo: %w", err)
	}
	if photo == nil {
		return 0, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}

	if !voter.Role.Has(domain.CapabilityVote) {
		return 0, fmt.Errorf("%w: your role cannot vote", domain.ErrForbidden)
	}

	// Owners never vote for their own entry, no matter what state it is in.
	if photo.UserID == voter.ID {
		return 0, fmt.Errorf("%w: you cannot vote for your own photo", domain.ErrInvalidOperation)
	}

	if photo.Status != domain.PhotoStatusApproved {
		return 0, fmt.Errorf("%w: only approved photos accept votes", domain.ErrInvalidState)
	}

	// Cheap pre-check for the common duplicate case. The unique constraint in
	// InsertVote still decides races.
	voted, err := uc.ledger.HasVoted(ctx, voter.ID, photo.ID)
	if err != nil {
		return 0, fmt.Errorf("checking existing vote: %w", err)
	}
	if voted {
		return 0, fmt.Errorf("%w: you have already voted for this photo", domain.ErrConflict)
	}

	count, err := uc.ledger.InsertVote(ctx, voter.ID, photo.ID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return 0, fmt.Errorf("%w: you have already voted for this photo", domain.ErrConflict)
		}
		return 0, fmt.Errorf("recording vote: %w", err)
	}

	uc.logger.Info("vote recorded",
		"photo_id", photo.ID,
		"voter_id", voter.ID,
		"votes_count", count,
	)

	if err := uc.notifier.Notify(ctx, photo.UserID, fmt.Sprintf("Your photo %q received a new vote!", photo.Title)); err != nil {
		uc.logger.Warn("failed to create notification", "user_id", photo.UserID, "error", err)
	}

	return count, nil
}
