package cart

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/maisonvela/storefront-backend/pkg/kv"
	"github.com/maisonvela/storefront-backend/pkg/logger"
	"github.com/maisonvela/storefront-backend/pkg/metrics"
)

const mirrorKeyPrefix = "cart:"

// Manager hands out one Store per shopper session, restoring each from its
// durable mirror exactly once. Two processes sharing a mirror are not
// reconciled with each other: the last writer wins, matching the source
// system's cross-tab behavior.
type Manager struct {
	store   kv.Store
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.StateStoreMetrics

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager builds a session cart registry over the given durable store.
// Mirror entries are refreshed with ttl on every write.
func NewManager(store kv.Store, ttl time.Duration, logg *logger.Logger, stateMetrics *metrics.StateStoreMetrics) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	return &Manager{
		store:   store,
		ttl:     ttl,
		logg:    logg,
		metrics: stateMetrics,
		stores:  make(map[string]*Store),
	}, nil
}

// ForSession returns the cart store for the session, creating and loading it
// on first use.
func (m *Manager) ForSession(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.stores[sessionID]; ok {
		return existing
	}

	store := NewStore(StoreOptions{
		Mirror:  NewKVMirror(m.store, mirrorKeyPrefix+sessionID, m.ttl),
		Logger:  m.logg,
		Metrics: m.metrics,
	})
	store.Load()
	m.stores[sessionID] = store
	return store
}

// DropSession releases the in-memory store for a session. The mirror entry is
// left alone so a later request can restore it.
func (m *Manager) DropSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// FlushAll re-mirrors every live cart and reports every failure. One bad
// session does not stop the sweep.
func (m *Manager) FlushAll() error {
	m.mu.Lock()
	stores := make(map[string]*Store, len(m.stores))
	for id, store := range m.stores {
		stores[id] = store
	}
	m.mu.Unlock()

	var errs error
	for id, store := range stores {
		if err := store.Flush(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("session %s: %w", id, err))
		}
	}
	return errs
}
