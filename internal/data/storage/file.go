package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/songzhibin97/cryptogainers/internal/data"
)

// FileStore keeps artifacts as plain files below Root. Keys are slash
// separated paths such as "data/top_gainers_2024-01-02_03-04.json".
type FileStore struct {
	Root string
}

func NewFileStore(root string) *FileStore {
	if root == "" {
		root = "."
	}
	return &FileStore{Root: root}
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return filepath.Join(s.Root, filepath.FromSlash(key)), nil
}

// Put implements DataStorage interface. Missing directories are created and an
// existing file under the same key is overwritten.
func (s *FileStore) Put(ctx context.Context, key, contentType string, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(p), err)
	}

	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", p, err)
	}

	return p, nil
}

// Get implements DataStorage interface
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, data.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", p, err)
	}
	return b, nil
}
