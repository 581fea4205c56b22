package cart

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/maisonvela/storefront-backend/pkg/kv"
)

// ErrNoMirror is returned by Mirror.Read when no usable snapshot exists.
// Corrupted payloads are reported the same way as absent ones.
var ErrNoMirror = errors.New("cart: no mirror snapshot")

// Mirror is the durable copy of the in-memory cart. It is rewritten on every
// mutation and read once at startup; it is never a second source of truth
// during a live session.
type Mirror interface {
	Write(items []Item) error
	Read() ([]Item, error)
	Clear() error
}

type kvMirror struct {
	store kv.Store
	key   string
	ttl   time.Duration
}

// NewKVMirror mirrors the cart as a JSON array under key in the given store,
// refreshed with ttl on every write.
func NewKVMirror(store kv.Store, key string, ttl time.Duration) Mirror {
	return &kvMirror{store: store, key: key, ttl: ttl}
}

func (m *kvMirror) Write(items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.store.Set(m.key, string(raw), m.ttl)
}

func (m *kvMirror) Read() ([]Item, error) {
	raw, err := m.store.Get(m.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNoMirror
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, ErrNoMirror
	}
	return items, nil
}

func (m *kvMirror) Clear() error {
	return m.store.Delete(m.key)
}
