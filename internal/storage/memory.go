package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps snapshots in a map. It backs tests and the degraded
// mode the service falls into when the snapshot database cannot be opened:
// data then lives for the current session only.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Load returns the snapshot stored under key, if any.
func (b *MemoryBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Save overwrites the snapshot stored under key.
func (b *MemoryBackend) Save(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	b.data[key] = cp
	return nil
}

// Delete removes the snapshot stored under key.
func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, key)
	return nil
}

// Close is a no-op for the in-memory backend.
func (b *MemoryBackend) Close() error {
	return nil
}
