// Package storage keeps uploaded gallery images on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

// AllowedImageExtensions are the upload types the gallery accepts.
var AllowedImageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

type localStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore returns a FileStore writing under dir, creating it if needed.
func NewLocalStore(dir string) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{dir: dir, now: time.Now}, nil
}

// Save writes r to "<uuid>_<unix><ext>". Extensions outside AllowedImageExtensions are rejected
// with ErrInvalidInput.
func (s *localStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !AllowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%d%s", uuid.NewString(), s.now().Unix(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return name, nil
}

// Delete removes a stored file. A missing file is ErrNotFound.
func (s *localStore) Delete(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w: bad file name %q", domain.ErrInvalidInput, name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return domain.ErrNotFound
	}
	return err
}
