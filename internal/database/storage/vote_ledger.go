package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// VoteLedgerStorage implements the vote ledger on raw sqlx transactions. The
// unique_vote constraint on (user_id, photo_id) is the final arbiter for
// duplicates; the denormalized photos.votes_count moves in the same
// transaction as the vote row so the two never diverge.
type VoteLedgerStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewVoteLedgerStorage(db *sqlx.DB, logger *slog.Logger) *VoteLedgerStorage {
	return &VoteLedgerStorage{db: db, logger: logger}
}

// InsertVote writes the vote row and increments the photo's counter in one
// transaction. A duplicate vote rolls back and returns domain.ErrConflict.
func (s *VoteLedgerStorage) InsertVote(ctx context.Context, voterID, photoID uuid.UUID) (int, error) {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning vote transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO votes (id, user_id, photo_id, voted_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), voterID, photoID, time.Now(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return 0, fmt.Errorf("%w: duplicate vote", domain.ErrConflict)
		}
		s.logger.Error("failed to insert vote", "photo_id", photoID, "voter_id", voterID, "error", err)
		return 0, fmt.Errorf("inserting vote: %w", err)
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`UPDATE photos SET votes_count = votes_count + 1, updated_at = now() WHERE id = $1 RETURNING votes_count`,
		photoID,
	)
	if err != nil {
		s.logger.Error("failed to increment votes_count", "photo_id", photoID, "error", err)
		return 0, fmt.Errorf("incrementing vote counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing vote transaction: %w", err)
	}

	s.logger.Info("vote inserted",
		"photo_id", photoID,
		"voter_id", voterID,
		"votes_count", count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return count, nil
}

// HasVoted reports whether the voter already has a vote row for the photo.
func (s *VoteLedgerStorage) HasVoted(ctx context.Context, voterID, photoID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM votes WHERE user_id = $1 AND photo_id = $2)`,
		voterID, photoID,
	)
	if err != nil {
		return false, fmt.Errorf("checking vote existence: %w", err)
	}
	return exists, nil
}

// CountVotes counts the vote rows for the photo directly, bypassing the
// denormalized counter.
func (s *VoteLedgerStorage) CountVotes(ctx context.Context, photoID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM votes WHERE photo_id = $1`,
		photoID,
	)
	if err != nil {
		return 0, fmt.Errorf("counting votes: %w", err)
	}
	return count, nil
}
