package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/maisonvela/storefront-backend/pkg/logger"
	"github.com/maisonvela/storefront-backend/pkg/metrics"
)

const metricsLabel = "cart"

// Store holds the authoritative ordered collection of cart items for one
// shopper session and keeps the durable mirror in sync on every mutation.
// The mirror is advisory: a failed write never rolls back the in-memory
// change, it is logged and counted instead.
type Store struct {
	mu      sync.Mutex
	items   []Item
	mirror  Mirror
	logg    *logger.Logger
	metrics *metrics.StateStoreMetrics
	now     func() time.Time
}

// StoreOptions configures a Store. Mirror may be nil for a purely in-memory
// cart; Now defaults to time.Now.
type StoreOptions struct {
	Mirror  Mirror
	Logger  *logger.Logger
	Metrics *metrics.StateStoreMetrics
	Now     func() time.Time
}

// NewStore builds an empty cart store.
func NewStore(opts StoreOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		mirror:  opts.Mirror,
		logg:    opts.Logger,
		metrics: opts.Metrics,
		now:     now,
	}
}

// AddItem appends a new line for the product, or increments the quantity of
// an existing line with the same id. AddedAt is set once, at first insertion.
func (s *Store) AddItem(ref ProductRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == ref.ID {
			s.items[i].Quantity++
			s.writeMirrorLocked()
			return
		}
	}

	s.items = append(s.items, Item{
		ID:       ref.ID,
		Name:     ref.Name,
		Category: ref.Category,
		Image:    ref.Image,
		Price:    ref.Price,
		Quantity: 1,
		AddedAt:  s.now().UnixMilli(),
	})
	s.writeMirrorLocked()
}

// RemoveItem deletes the line with the given id. Absent ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// UpdateQuantity sets the quantity of the line with the given id to exactly
// quantity. Zero or negative quantity is normalized to absence, identical to
// RemoveItem. Absent ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		return
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.writeMirrorLocked()
			return
		}
	}
}

// Clear empties the collection and deletes the mirror entry entirely rather
// than writing an empty array.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Clear(); err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		if s.logg != nil {
			s.logg.Error(context.Background(), "cart.mirror.clear_failed", err)
		}
		return
	}
	s.metrics.IncWriteSuccess(metricsLabel)
}

// TotalItems returns the sum of all quantities; 0 for an empty cart.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price*quantity across all lines. Prices are
// plain float64 arithmetic; the domain uses whole-currency-unit pricing.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Items returns a copy of the current collection in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Load restores the collection from the mirror. An absent or unparsable
// snapshot leaves the store empty; that is "no cart yet", not an error.
func (s *Store) Load() {
	if s.mirror == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.mirror.Read()
	if err != nil {
		if !errors.Is(err, ErrNoMirror) {
			s.metrics.IncLoadFailure(metricsLabel)
			if s.logg != nil {
				s.logg.Warn(context.Background(), "cart.mirror.load_failed")
			}
		}
		return
	}

	restored := items[:0:0]
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		restored = append(restored, item)
	}
	s.items = restored
}

// Flush rewrites the mirror from the current contents and, unlike the
// per-mutation writes, returns the write error to the caller. Used on
// shutdown when there is no later mutation to retry through.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mirror == nil {
		return nil
	}
	if err := s.mirror.Write(s.items); err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		return err
	}
	s.metrics.IncWriteSuccess(metricsLabel)
	return nil
}

func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.writeMirrorLocked()
			return
		}
	}
}

// writeMirrorLocked rewrites the full collection into the mirror. Failures
// are swallowed; the in-memory state already moved on.
func (s *Store) writeMirrorLocked() {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Write(s.items); err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		if s.logg != nil {
			s.logg.Error(context.Background(), "cart.mirror.write_failed", err)
		}
		return
	}
	s.metrics.IncWriteSuccess(metricsLabel)
}
