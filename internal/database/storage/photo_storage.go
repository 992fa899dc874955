package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// PhotoStorage persists photos with GORM.
type PhotoStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPhotoStorage(db *gorm.DB, logger *slog.Logger) *PhotoStorage {
	return &PhotoStorage{db: db, logger: logger}
}

func (s *PhotoStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	start := time.Now()

	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(photo)
	if result.Error != nil {
		s.logger.Error("failed to save photo", "id", photo.ID, "error", result.Error)
		return fmt.Errorf("saving photo: %w", result.Error)
	}

	s.logger.Info("photo saved",
		"id", photo.ID,
		"user_id", photo.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *PhotoStorage) GetPhotoByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	result := s.db.WithContext(ctx).First(&photo, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting photo by id: %w", result.Error)
	}
	return &photo, nil
}

func (s *PhotoStorage) UpdatePhotoStatus(ctx context.Context, id uuid.UUID, status domain.PhotoStatus) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		s.logger.Error("failed to update photo status", "id", id, "status", status, "error", result.Error)
		return fmt.Errorf("updating photo status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	return nil
}

func (s *PhotoStorage) UpdatePhotoDetails(ctx context.Context, id uuid.UUID, title, description string) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "description": description, "updated_at": time.Now()})
	if result.Error != nil {
		s.logger.Error("failed to update photo details", "id", id, "error", result.Error)
		return fmt.Errorf("updating photo details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	return nil
}

// ListApprovedByVotes orders by votes_count DESC with id ASC as the stable
// tie-break so rankings do not shuffle between requests.
func (s *PhotoStorage) ListApprovedByVotes(ctx context.Context, limit, offset int) ([]domain.Photo, error) {
	var photos []domain.Photo
	result := s.db.WithContext(ctx).
		Where("status = ?", domain.PhotoStatusApproved).
		Order("votes_count DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&photos)
	if result.Error != nil {
		return nil, fmt.Errorf("listing approved photos: %w", result.Error)
	}
	return photos, nil
}

func (s *PhotoStorage) ListPhotosByUser(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	var photos []domain.Photo
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&photos)
	if result.Error != nil {
		return nil, fmt.Errorf("listing photos by user: %w", result.Error)
	}
	return photos, nil
}

func (s *PhotoStorage) ListPhotosByStatus(ctx context.Context, status domain.PhotoStatus) ([]domain.Photo, error) {
	var photos []domain.Photo
	result := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("uploaded_at ASC").
		Find(&photos)
	if result.Error != nil {
		return nil, fmt.Errorf("listing photos by status: %w", result.Error)
	}
	return photos, nil
}
