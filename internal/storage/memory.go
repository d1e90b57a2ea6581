package storage

import (
	"context"
	"sync"

	"storefront/internal/model"
)

// memoryStore keeps snapshots in process memory.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an in-memory snapshot store.
func NewMemoryStore() SnapshotStore {
	return &memoryStore{
		records: make(map[string][]byte),
	}
}

func (s *memoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[key]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.records[key] = stored
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
