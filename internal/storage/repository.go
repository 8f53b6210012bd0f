// ABOUTME: BlobStore interface for named, opaque collection blobs.
// ABOUTME: Backends store whole serialized collections under string keys.
package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when no blob exists for the key.
var ErrNotFound = errors.New("not found")

// BlobStore persists serialized collections by name.
// Implementations replace the whole value on Set; there is no partial update.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Close() error
}

// Compile-time checks that the backends implement BlobStore.
var (
	_ BlobStore = (*DB)(nil)
	_ BlobStore = (*Badger)(nil)
	_ BlobStore = (*FileStore)(nil)
	_ BlobStore = (*Memory)(nil)
)

// DataDir returns the default data directory following XDG base directory conventions.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "recovery")
}
