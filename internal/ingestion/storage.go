// Package ingestion loads, persists and imports the points table behind the
// running service: blob storage, the optional Postgres repository and HTML
// import all feed the in-process standings.Store.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TableKey is the object key the current table is stored under.
const TableKey = "standings/current.json"

// ErrNotFound is returned by StorageClient.GetTable when nothing is stored.
var ErrNotFound = errors.New("table not found in storage")

// StorageClient abstracts blob storage for the serialized points table.
type StorageClient interface {
	PutTable(ctx context.Context, data []byte) error
	GetTable(ctx context.Context) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and single-node deployments.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path() string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(TableKey))
}

// PutTable writes the table through a temp file so readers never see a
// partial write.
func (s *LocalStorage) PutTable(ctx context.Context, data []byte) error {
	path := s.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return os.Rename(tmp, path)
}

// GetTable reads the stored table.
func (s *LocalStorage) GetTable(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}
