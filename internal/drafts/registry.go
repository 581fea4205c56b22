package drafts

import (
	"fmt"
	"sync"

	"github.com/maisonvela/storefront-backend/pkg/kv"
	"github.com/maisonvela/storefront-backend/pkg/logger"
	"github.com/maisonvela/storefront-backend/pkg/metrics"
)

// Registry hands out one draft store per form id. Stores start enabled; the
// caller flips enablement as the owning dialog opens and closes.
type Registry struct {
	store   kv.Store
	logg    *logger.Logger
	metrics *metrics.StateStoreMetrics

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry builds a draft store registry over the given durable store.
func NewRegistry(store kv.Store, logg *logger.Logger, stateMetrics *metrics.StateStoreMetrics) (*Registry, error) {
	if store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	return &Registry{
		store:   store,
		logg:    logg,
		metrics: stateMetrics,
		stores:  make(map[string]*Store),
	}, nil
}

// ForForm returns the draft store for the form id, creating it on first use.
func (r *Registry) ForForm(formID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.stores[formID]; ok {
		return existing, nil
	}

	store, err := NewStore(r.store, formID, StoreOptions{
		Enabled: true,
		Logger:  r.logg,
		Metrics: r.metrics,
	})
	if err != nil {
		return nil, err
	}
	r.stores[formID] = store
	return store, nil
}
