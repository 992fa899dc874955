package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Storage keeps uploaded files on the local disk under a base directory.
// This is the default backend for development and single-node deployments.
type Storage struct {
	baseDir string
	logger  *slog.Logger
}

func NewStorage(baseDir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Storage{baseDir: baseDir, logger: logger}, nil
}

// UploadFile writes the file under baseDir/key and returns the key.
func (s *Storage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", key, err)
	}
	defer f.Close()

	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing file %s: %w", key, err)
	}

	s.logger.Info("file stored locally", "key", key, "bytes", written)
	return key, nil
}

// DeleteFile removes the file for the key. A missing file is not an error.
func (s *Storage) DeleteFile(ctx context.Context, key string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file %s: %w", key, err)
	}
	return nil
}
