package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IdentityUseCase covers registration, authentication and profile updates.
type IdentityUseCase interface {
	// Register creates a new account. Only participant and voter roles can be
	// chosen; anything else is coerced to participant. A duplicate email
	// fails with a Conflict error.
	Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, error)

	// Authenticate checks credentials and returns the user, or a Forbidden
	// error that does not reveal whether the email exists.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser resolves a user by id, for the auth middleware.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdateProfile changes username and bio. A username held by another
	// user fails with a Conflict error.
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, bio string) (*domain.User, error)

	// UpdateProfilePicture stores the uploaded image and records its key.
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename, contentType string) (*domain.User, error)

	// EnsureAdmin seeds the admin account on startup if it does not exist.
	// This is the only path that creates an admin; Register never does.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type identityUseCase struct {
	users       ports.UserStorage
	fileStorage FileStorage
	logger      *slog.Logger
}

// NewIdentityUseCase creates a new IdentityUseCase.
func NewIdentityUseCase(users ports.UserStorage, fileStorage FileStorage, logger *slog.Logger) IdentityUseCase {
	return &identityUseCase{users: users, fileStorage: fileStorage, logger: logger}
}

func (uc *identityUseCase) Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	// Admin registration is never accepted through this path; the admin
	// account comes from seed data only.
	if !role.Registerable() {
		role = domain.RoleParticipant
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		PasswordHash:   string(hash),
		Role:           role,
		ProfilePicture: "default.jpg",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (uc *identityUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrForbidden)
	}

	return user, nil
}

func (uc *identityUseCase) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	return user, nil
}

func (uc *identityUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, username, bio string) (*domain.User, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username != "" {
		taken, err := uc.users.UsernameTaken(ctx, username, userID)
		if err != nil {
			return nil, fmt.Errorf("checking username: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: username already taken", domain.ErrConflict)
		}
		user.Username = username
	}

	user.Bio = bio
	user.UpdatedAt = time.Now()

	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	uc.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

func (uc *identityUseCase) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename, contentType string) (*domain.User, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExt(ext) {
		return nil, fmt.Errorf("%w: invalid file type, only JPG, PNG, GIF allowed", domain.ErrValidation)
	}

	key := fmt.Sprintf("profile_pictures/%s%s", uuid.New(), ext)
	if _, err := uc.fileStorage.UploadFile(ctx, key, file, contentType); err != nil {
		return nil, fmt.Errorf("storing profile picture: %w", err)
	}

	previous := user.ProfilePicture
	user.ProfilePicture = key
	user.UpdatedAt = time.Now()

	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile picture: %w", err)
	}

	// The replaced picture is dead weight in the store. Best-effort cleanup;
	// the shared default is never deleted.
	if previous != "" && previous != "default.jpg" {
		if err := uc.fileStorage.DeleteFile(ctx, previous); err != nil {
			uc.logger.Warn("failed to delete previous profile picture", "key", previous, "error", err)
		}
	}

	uc.logger.Info("profile picture updated", "user_id", user.ID, "key", key)
	return user, nil
}

func (uc *identityUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := uc.users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	now := time.Now()
	admin := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       "admin",
		PasswordHash:   string(hash),
		Role:           domain.RoleAdmin,
		ProfilePicture: "default.jpg",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.users.CreateUser(ctx, admin); err != nil {
		// Another instance won the race; the account exists either way.
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return fmt.Errorf("creating admin account: %w", err)
	}

	uc.logger.Info("admin account seeded", "email", email)
	return nil
}

// allowedUploadExt mirrors the accepted contest image formats.
func allowedUploadExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}
