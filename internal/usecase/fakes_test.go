package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUserStorage is an in-memory ports.UserStorage for tests.
type memUserStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newMemUserStorage() *memUserStorage {
	return &memUserStorage{users: make(map[uuid.UUID]domain.User)}
}

func (m *memUserStorage) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUserStorage) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (m *memUserStorage) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserStorage) UsernameTaken(_ context.Context, username string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStorage) UpdateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

// memPhotoStorage is an in-memory ports.PhotoStorage for tests.
type memPhotoStorage struct {
	mu     sync.Mutex
	photos map[uuid.UUID]domain.Photo
}

func newMemPhotoStorage() *memPhotoStorage {
	return &memPhotoStorage{photos: make(map[uuid.UUID]domain.Photo)}
}

func (m *memPhotoStorage) SavePhoto(_ context.Context, photo *domain.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos[photo.ID] = *photo
	return nil
}

func (m *memPhotoStorage) GetPhotoByID(_ context.Context, id uuid.UUID) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.photos[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (m *memPhotoStorage) UpdatePhotoStatus(_ context.Context, id uuid.UUID, status domain.PhotoStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	p.Status = status
	m.photos[id] = p
	return nil
}

func (m *memPhotoStorage) UpdatePhotoDetails(_ context.Context, id uuid.UUID, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	p.Title = title
	p.Description = description
	m.photos[id] = p
	return nil
}

func (m *memPhotoStorage) ListApprovedByVotes(_ context.Context, limit, offset int) ([]domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var approved []domain.Photo
	for _, p := range m.photos {
		if p.Status == domain.PhotoStatusApproved {
			approved = append(approved, p)
		}
	}
	sort.Slice(approved, func(i, j int) bool {
		if approved[i].VotesCount != approved[j].VotesCount {
			return approved[i].VotesCount > approved[j].VotesCount
		}
		return approved[i].ID.String() < approved[j].ID.String()
	})

	if offset >= len(approved) {
		return nil, nil
	}
	approved = approved[offset:]
	if limit < len(approved) {
		approved = approved[:limit]
	}
	return approved, nil
}

func (m *memPhotoStorage) ListPhotosByUser(_ context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Photo
	for _, p := range m.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPhotoStorage) ListPhotosByStatus(_ context.Context, status domain.PhotoStatus) ([]domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Photo
	for _, p := range m.photos {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// memVoteLedger mimics the unique constraint with a mutex-guarded set so
// concurrent CastVote calls race exactly like they would against PostgreSQL.
type memVoteLedger struct {
	mu     sync.Mutex
	votes  map[string]bool
	photos *memPhotoStorage
}

func newMemVoteLedger(photos *memPhotoStorage) *memVoteLedger {
	return &memVoteLedger{votes: make(map[string]bool), photos: photos}
}

func voteKey(voterID, photoID uuid.UUID) string {
	return voterID.String() + "/" + photoID.String()
}

func (m *memVoteLedger) InsertVote(_ context.Context, voterID, photoID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := voteKey(voterID, photoID)
	if m.votes[key] {
		return 0, fmt.Errorf("%w: duplicate vote", domain.ErrConflict)
	}
	m.votes[key] = true

	m.photos.mu.Lock()
	defer m.photos.mu.Unlock()
	p, ok := m.photos.photos[photoID]
	if !ok {
		return 0, fmt.Errorf("%w: photo not found", domain.ErrNotFound)
	}
	p.VotesCount++
	m.photos.photos[photoID] = p
	return p.VotesCount, nil
}

func (m *memVoteLedger) HasVoted(_ context.Context, voterID, photoID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.votes[voteKey(voterID, photoID)], nil
}

func (m *memVoteLedger) CountVotes(_ context.Context, photoID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for key := range m.votes {
		if key[len(key)-36:] == photoID.String() {
			count++
		}
	}
	return count, nil
}

// memCommentStorage is an in-memory ports.CommentStorage for tests.
type memCommentStorage struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func newMemCommentStorage() *memCommentStorage {
	return &memCommentStorage{}
}

func (m *memCommentStorage) AppendComment(_ context.Context, comment *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentStorage) ListActiveByPhoto(_ context.Context, photoID uuid.UUID) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Comment
	for _, c := range m.comments {
		if c.PhotoID == photoID && c.Status == domain.CommentStatusActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// memNotificationStorage is an in-memory ports.NotificationStorage for tests.
type memNotificationStorage struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]domain.Notification
}

func newMemNotificationStorage() *memNotificationStorage {
	return &memNotificationStorage{notifications: make(map[uuid.UUID]domain.Notification)}
}

func (m *memNotificationStorage) CreateNotification(_ context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = *n
	return nil
}

func (m *memNotificationStorage) GetNotificationByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		copied := n
		return &copied, nil
	}
	return nil, nil
}

func (m *memNotificationStorage) ListUnread(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNotificationStorage) MarkRead(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return fmt.Errorf("%w: notification not found", domain.ErrNotFound)
	}
	n.IsRead = true
	m.notifications[id] = n
	return nil
}

func (m *memNotificationStorage) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
			m.notifications[id] = n
		}
	}
	return nil
}

// memFileStorage records uploads without touching the disk.
type memFileStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFileStorage() *memFileStorage {
	return &memFileStorage{files: make(map[string][]byte)}
}

func (m *memFileStorage) UploadFile(_ context.Context, key string, reader io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
	return key, nil
}

func (m *memFileStorage) DeleteFile(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

// recordingNotifier collects messages per user for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[uuid.UUID][]string)}
}

func (r *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[userID] = append(r.messages[userID], message)
	return nil
}

func (r *recordingNotifier) forUser(userID uuid.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages[userID]...)
}

// seedUser inserts a user with the given role and returns it.
func seedUser(store *memUserStorage, role domain.Role) *domain.User {
	id := uuid.New()
	user := domain.User{
		ID:        id,
		Email:     id.String() + "@example.com",
		Username:  "user-" + id.String()[:8],
		Role:      role,
		CreatedAt: time.Now(),
	}
	store.users[id] = user
	return &user
}

// seedPhoto inserts a photo in the given status and returns it.
func seedPhoto(store *memPhotoStorage, ownerID uuid.UUID, status domain.PhotoStatus) *domain.Photo {
	photo := domain.Photo{
		ID:         uuid.New(),
		UserID:     ownerID,
		Title:      "Sunset",
		Filename:   "photos/sunset.jpg",
		Status:     status,
		UploadedAt: time.Now(),
		CreatedAt:  time.Now(),
	}
	store.photos[photo.ID] = photo
	return &photo
}

func fileReader() io.Reader {
	return bytes.NewReader([]byte("fake image bytes"))
}
