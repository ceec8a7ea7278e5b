package keystore

import (
	"sync"

	"reelmatch/internal/domain/service"
)

// MemoryStore is a map-backed token store for tests and runs that must not
// persist credentials.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

var _ service.TokenStore = (*MemoryStore)(nil)

// Get returns the stored value and whether it was present.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok
}

// Set stores or overwrites a value.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

// Delete removes a value; deleting a missing key is a no-op.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}
