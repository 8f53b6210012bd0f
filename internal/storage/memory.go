// ABOUTME: In-memory BlobStore for tests and ephemeral sessions.
// ABOUTME: Failures can be injected to simulate an unavailable backend.
package storage

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Memory is a map-backed BlobStore.
type Memory struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	err    error
	writes int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, fmt.Errorf("get %s: %w", key, m.err)
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	return slices.Clone(data), nil
}

// Set replaces the blob stored under key.
func (m *Memory) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return fmt.Errorf("set %s: %w", key, m.err)
	}
	m.blobs[key] = slices.Clone(data)
	m.writes++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// FailWith makes every subsequent Get and Set return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.blobs))
}
