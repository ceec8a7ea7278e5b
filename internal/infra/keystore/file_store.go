// Package keystore provides the persistent and in-memory token store
// implementations backing the session controller.
package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"reelmatch/internal/domain/service"

	"github.com/pkg/errors"
)

// FileStore keeps tokens in a single JSON file with owner-only permissions,
// the CLI equivalent of a keychain entry. Every operation reads the file so
// that short-lived processes always observe the latest state; a RWMutex
// serializes access within one process.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates the parent directory if needed and returns a store
// rooted at path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("token store path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create token store directory")
	}

	return &FileStore{path: path}, nil
}

var _ service.TokenStore = (*FileStore)(nil)

// Get returns the stored value for key. A missing file or key is the
// logged-out state, not an error.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false
	}
	value, ok := values[key]

	return value, ok
}

// Set stores or overwrites a value.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value

	return s.save(values)
}

// Delete removes a value; deleting a missing key is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)

	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, errors.Wrap(err, "read token store")
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "parse token store")
	}

	return values, nil
}

// save writes atomically via a temp file so a crash never leaves a
// half-written store behind.
func (s *FileStore) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "encode token store")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write token store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace token store")
	}

	return nil
}
