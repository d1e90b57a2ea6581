package storage

import "context"

// SnapshotStore persists opaque snapshot records under a key.
type SnapshotStore interface {
	// Load returns the record stored under key.
	// Returns model.ErrSnapshotNotFound if nothing is stored.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the record stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the record stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
