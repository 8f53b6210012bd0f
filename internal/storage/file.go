// ABOUTME: File-based BlobStore writing one JSON file per collection.
// ABOUTME: Writes go through a temp file and rename so readers never see partial data.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each collection in <dataDir>/<key>.json.
type FileStore struct {
	dataDir string
}

// NewFileStore creates a file-backed store rooted at dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// Close releases resources. For FileStore this is a no-op.
func (s *FileStore) Close() error {
	return nil
}

// path returns the file path for a collection key.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Get returns the blob stored under key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the blob stored under key.
func (s *FileStore) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dataDir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
