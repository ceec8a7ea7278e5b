package keystore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingKeyIsNotAnError(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	value, ok := store.Get("access_token")
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestFileStore_SetGetDelete(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("access_token", "A"))
	require.NoError(t, store.Set("refresh_token", "R"))

	value, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "A", value)

	require.NoError(t, store.Delete("access_token"))
	_, ok = store.Get("access_token")
	assert.False(t, ok)

	// The other key is untouched.
	value, ok = store.Get("refresh_token")
	require.True(t, ok)
	assert.Equal(t, "R", value)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete("access_token"))
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("refresh_token", "R"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	value, ok := reopened.Get("refresh_token")
	require.True(t, ok)
	assert.Equal(t, "R", value)
}

func TestFileStore_FilePermissionsAreOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("access_token", "A"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ConcurrentAccess(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("access_token", "A")
		}()
		go func() {
			defer wg.Done()
			store.Get("access_token")
		}()
	}
	wg.Wait()

	value, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "A", value)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("access_token")
	assert.False(t, ok)

	require.NoError(t, store.Set("access_token", "A"))
	value, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "A", value)

	require.NoError(t, store.Delete("access_token"))
	_, ok = store.Get("access_token")
	assert.False(t, ok)
}
