package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalPhotoStorage stores equipment photos on the local filesystem.
type LocalPhotoStorage struct {
	dir string
}

func NewLocalPhotoStorage(dir string) (*LocalPhotoStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &LocalPhotoStorage{dir: dir}, nil
}

func (s *LocalPhotoStorage) Save(ctx context.Context, ext string, reader io.Reader) (string, error) {
	key := uuid.New().String() + sanitizeExt(ext)

	file, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}
	return key, nil
}

func (s *LocalPhotoStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo file: %w", err)
	}
	return file, nil
}

func (s *LocalPhotoStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo file: %w", err)
	}
	return nil
}

// resolve joins key onto the storage dir and rejects path traversal.
func (s *LocalPhotoStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean != filepath.Base(clean) {
		return "", fmt.Errorf("invalid photo key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
