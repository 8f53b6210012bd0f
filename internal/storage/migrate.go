// ABOUTME: Data migration between recovery storage backends.
// ABOUTME: Copies named collection blobs from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary records which keys were copied and which were absent in the source.
type MigrateSummary struct {
	Copied  []string
	Missing []string
	Bytes   int
}

// MigrateData copies the blobs for keys from src to dst, overwriting dst.
// Keys absent from src are reported in Missing and left untouched in dst.
func MigrateData(src, dst BlobStore, keys []string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range keys {
		data, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			summary.Missing = append(summary.Missing, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}

		if err := dst.Set(key, data); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
		summary.Bytes += len(data)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
