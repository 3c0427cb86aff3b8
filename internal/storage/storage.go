// Package storage provides the key-value snapshot persistence the data store
// writes through. Each key holds a full JSON snapshot of one collection and is
// rewritten in its entirety on every save; there is no delta persistence.
package storage

import "context"

// Backend is the persistence contract of the store. Implementations must be
// safe for concurrent use.
type Backend interface {
	// Load returns the snapshot stored under key. The second return value is
	// false when the key has never been saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the snapshot stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the snapshot stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
