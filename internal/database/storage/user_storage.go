package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// UserStorage persists user accounts with GORM.
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) || isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		s.logger.Error("failed to create user", "email", user.Email, "error", result.Error)
		return fmt.Errorf("creating user: %w", result.Error)
	}

	s.logger.Info("user created",
		"id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user by id: %w", result.Error)
	}
	return &user, nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user by email: %w", result.Error)
	}
	return &user, nil
}

func (s *UserStorage) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("checking username: %w", result.Error)
	}
	return count > 0, nil
}

func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		s.logger.Error("failed to update user", "id", user.ID, "error", result.Error)
		return fmt.Errorf("updating user: %w", result.Error)
	}
	return nil
}

// isUniqueViolation matches the PostgreSQL unique violation code in the error
// text. GORM with a shared *sql.DB does not always translate driver errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), pgUniqueViolation)
}
