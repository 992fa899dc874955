package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

// ModerationUseCase owns the photo lifecycle: submission into the pending
// state and the admin transitions between pending, approved and rejected.
type ModerationUseCase interface {
	// SubmitPhoto stores the upload and creates a pending photo owned by the
	// submitter. Requires the submit capability.
	SubmitPhoto(ctx context.Context, ownerID uuid.UUID, title, description string, file io.Reader, filename, contentType string) (*domain.Photo, error)

	// Approve moves the photo to approved from any state. Admin only.
	Approve(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error)

	// Reject moves the photo to rejected from any state. Admin only.
	Reject(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error)

	// Revert moves the photo back to pending from any state. Admin only.
	Revert(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error)

	// UpdatePhoto edits title and description. Only the owner or an admin may
	// edit, and only while the photo is pending.
	UpdatePhoto(ctx context.Context, actorID, photoID uuid.UUID, title, description string) (*domain.Photo, error)
}

type moderationUseCase struct {
	users       ports.UserStorage
	photos      ports.PhotoStorage
	fileStorage FileStorage
	notifier    Notifier
	logger      *slog.Logger
}

// NewModerationUseCase creates a new ModerationUseCase.
func NewModerationUseCase(
	users ports.UserStorage,
	photos ports.PhotoStorage,
	fileStorage FileStorage,
	notifier Notifier,
	logger *slog.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		users:       users,
		photos:      photos,
		fileStorage: fileStorage,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *moderationUseCase) SubmitPhoto(ctx context.Context, ownerID uuid.UUID, title, description string, file io.Reader, filename, contentType string) (*domain.Photo, error) {
	owner, err := uc.resolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.Role.Has(domain.CapabilitySubmit) {
		return nil, fmt.Errorf("%w: only participants can submit photos", domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExt(ext) {
		return nil, fmt.Errorf("%w: invalid file type, only JPG, PNG, GIF allowed", domain.ErrValidation)
	}

	photoID := uuid.New()
	key := fmt.Sprintf("photos/%s%s", photoID, ext)
	if _, err := uc.fileStorage.UploadFile(ctx, key, file, contentType); err != nil {
		return nil, fmt.Errorf("storing photo file: %w", err)
	}

	now := time.Now()
	photo := &domain.Photo{
		ID:          photoID,
		UserID:      owner.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Filename:    key,
		Status:      domain.PhotoStatusPending,
		UploadedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.photos.SavePhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("saving photo: %w", err)
	}

	uc.logger.Info("photo submitted", "photo_id", photo.ID, "user_id", owner.ID)
	uc.notifyOwner(ctx, photo.UserID, fmt.Sprintf("Your photo %q has been submitted for review.", photo.Title))

	return photo, nil
}

func (uc *moderationUseCase) Approve(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error) {
	return uc.transition(ctx, adminID, photoID, domain.PhotoStatusApproved,
		"Your photo %q has been approved!")
}

func (uc *moderationUseCase) Reject(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error) {
	return uc.transition(ctx, adminID, photoID, domain.PhotoStatusRejected,
		"Your photo %q has been rejected.")
}

func (uc *moderationUseCase) Revert(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error) {
	return uc.transition(ctx, adminID, photoID, domain.PhotoStatusPending,
		"Your photo %q has been reverted to pending status.")
}

// transition applies a status change. All three transitions are total: any
// state may move to any other state, last writer wins. The owner notification
// is best-effort and never rolls back the status change.
func (uc *moderationUseCase) transition(ctx context.Context, adminID, photoID uuid.UUID, target domain.PhotoStatus, messageFormat string) (*domain.Photo, error) {
	admin, err := uc.resolveUser(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.Role.Has(domain.CapabilityModerate) {
		return nil, fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}

	photo, err := uc.resolvePhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if err := uc.photos.UpdatePhotoStatus(ctx, photo.ID, target); err != nil {
		return nil, fmt.Errorf("updating photo status: %w", err)
	}
	photo.Status = target
	photo.UpdatedAt = time.Now()

	uc.logger.Info("photo status changed",
		"photo_id", photo.ID,
		"status", target,
		"admin_id", admin.ID,
	)
	uc.notifyOwner(ctx, photo.UserID, fmt.Sprintf(messageFormat, photo.Title))

	return photo, nil
}

func (uc *moderationUseCase) UpdatePhoto(ctx context.Context, actorID, photoID uuid.UUID, title, description string) (*domain.Photo, error) {
	actor, err := uc.resolveUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	photo, err := uc.resolvePhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if actor.ID != photo.UserID && !actor.Role.Has(domain.CapabilityModerate) {
		return nil, fmt.Errorf("%w: you can only edit your own photos", domain.ErrForbidden)
	}
	if photo.Status != domain.PhotoStatusPending {
		return nil, fmt.Errorf("%w: only pending photos can be edited", domain.ErrInvalidState)
	}

	title = strings.TrimSpace(title)
	if title != "" {
		photo.Title = title
	}
	photo.Description = strings.TrimSpace(description)
	photo.UpdatedAt = time.Now()

	if err := uc.photos.UpdatePhotoDetails(ctx, photo.ID, photo.Title, photo.Description); err != nil {
		return nil, fmt.Errorf("updating photo details: %w", err)
	}

	uc.logger.Info("photo details updated", "photo_id", photo.ID, "actor_id", actor.ID)
	return photo, nil
}

func (uc *moderationUseCase) resolveUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrForbidden)
	}
	return user, nil
}

func (uc *moderationUseCase) resolvePhoto(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, err := uc.photos.GetPhotoByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up photo: %w", err)
	}
	if photo == nil {
		return nil, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	return photo, nil
}

// notifyOwner swallows notification failures: notifications are advisory and
// never abort the primary mutation.
func (uc *moderationUseCase) notifyOwner(ctx context.Context, ownerID uuid.UUID, message string) {
	if err := uc.notifier.Notify(ctx, ownerID, message); err != nil {
		uc.logger.Warn("failed to create notification", "user_id", ownerID, "error", err)
	}
}
