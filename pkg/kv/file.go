package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Value     string     `json:"value"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// FileStore persists entries to a single JSON file, rewritten atomically on
// every mutation. It is the default backend: local, small, TTL'd, and safe to
// lose, much like a browser cookie jar.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]fileEntry
	now     func() time.Time
}

// NewFileStore loads (or creates) the store backing file. A missing or
// unparsable file starts the store empty rather than failing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("kv: file path is required")
	}
	store := &FileStore{
		path:    path,
		entries: make(map[string]fileEntry),
		now:     time.Now,
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run
	case err != nil:
		return nil, fmt.Errorf("kv: reading %s: %w", path, err)
	default:
		var entries map[string]fileEntry
		if jsonErr := json.Unmarshal(raw, &entries); jsonErr == nil {
			store.entries = entries
		}
		// corrupted contents are discarded, not an error
	}

	store.sweepLocked()
	return store, nil
}

func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	if entry.ExpiresAt != nil && f.now().After(*entry.ExpiresAt) {
		delete(f.entries, key)
		return "", ErrNotFound
	}
	return entry.Value, nil
}

func (f *FileStore) Set(key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := fileEntry{Value: value}
	if ttl > 0 {
		expires := f.now().Add(ttl)
		entry.ExpiresAt = &expires
	}
	f.entries[key] = entry
	return f.flushLocked()
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.flushLocked()
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushLocked()
}

// sweepLocked drops expired entries. Caller holds the lock.
func (f *FileStore) sweepLocked() {
	now := f.now()
	for key, entry := range f.entries {
		if entry.ExpiresAt != nil && now.After(*entry.ExpiresAt) {
			delete(f.entries, key)
		}
	}
}

// flushLocked rewrites the backing file through a temp file and rename so a
// crash mid-write never leaves a truncated store.
func (f *FileStore) flushLocked() error {
	raw, err := json.Marshal(f.entries)
	if err != nil {
		return fmt.Errorf("kv: encoding entries: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("kv: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kv: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: replacing %s: %w", f.path, err)
	}
	return nil
}
