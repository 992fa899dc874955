package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// FileStorage is the port for binary photo data (local disk, AWS S3, MinIO).
type FileStorage interface {
	// UploadFile stores the file under key and returns a stable reference.
	// key is the unique name of the file in the store.
	// reader is the file data source (for example a multipart part).
	// contentType is the MIME type of the file.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile removes a file from the store by its key.
	DeleteFile(ctx context.Context, key string) error
}

// Notifier delivers a best-effort message to a user. Implemented by the
// notification outbox; callers treat failures as advisory and log them.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}
