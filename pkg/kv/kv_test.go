package kv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	require.NoError(t, store.Set("cart:abc", `[{"id":"p1"}]`, 0))

	got, err := store.Get("cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, got)

	require.NoError(t, store.Delete("cart:abc"))
	_, err = store.Get("cart:abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set("k", "v", time.Hour))
	_, err := store.Get("k")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteAbsentKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	assert.NoError(t, store.Delete("missing"))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("draft:product_new", `{"title":"Dress"}`, 0))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.Get("draft:product_new")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Dress"}`, got)
}

func TestFileStoreDiscardsCorruptedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err, "corrupted file must not fail open")
	_, err = store.Get("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSweepsExpiredEntriesOnOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set("cart:old", "[]", time.Minute))
	require.NoError(t, store.Set("cart:keep", "[]", 0))

	current = current.Add(time.Hour)
	_, err = store.Get("cart:old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get("cart:keep")
	assert.NoError(t, err, "entry without TTL should persist")
}
