// Package drafts snapshots in-progress admin form values into durable
// storage so an accidental navigation or crash does not lose work. Drafts
// are a convenience: every storage error is logged and swallowed, and a
// missing or unparsable draft is simply "no draft".
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/maisonvela/storefront-backend/pkg/kv"
	"github.com/maisonvela/storefront-backend/pkg/logger"
	"github.com/maisonvela/storefront-backend/pkg/metrics"
)

const (
	keyPrefix    = "draft:"
	metricsLabel = "draft"
)

// Record is the persisted snapshot for one form.
type Record struct {
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// Store autosaves one form's field values. The form id must distinguish
// editing sessions ("product_<id>" vs "product_new"); colliding ids would let
// unrelated drafts overwrite each other, and the store does not detect that.
type Store struct {
	kv      kv.Store
	formID  string
	logg    *logger.Logger
	metrics *metrics.StateStoreMetrics
	now     func() time.Time

	mu        sync.Mutex
	enabled   bool
	dirty     bool
	lastSaved *time.Time
}

// StoreOptions configures a draft store.
type StoreOptions struct {
	// Enabled is typically bound to "is this form's dialog open". While
	// disabled, Load, Save, and Clear are no-ops.
	Enabled bool
	Logger  *logger.Logger
	Metrics *metrics.StateStoreMetrics
	Now     func() time.Time
}

// NewStore builds a draft store scoped to formID.
func NewStore(store kv.Store, formID string, opts StoreOptions) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	if strings.TrimSpace(formID) == "" {
		return nil, fmt.Errorf("form id required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:      store,
		formID:  formID,
		logg:    opts.Logger,
		metrics: opts.Metrics,
		now:     now,
		enabled: opts.Enabled,
	}, nil
}

// FormID returns the form this store is scoped to.
func (s *Store) FormID() string {
	return s.formID
}

// SetEnabled toggles the store. Disabling does not touch durable storage.
func (s *Store) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Enabled reports whether storage operations currently take effect.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Dirty reports whether there are saves since the last load or clear. The
// surrounding page uses this to warn before an outright close.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastSaved returns the time of the last successful save or load, if any.
func (s *Store) LastSaved() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSaved == nil {
		return nil
	}
	t := *s.lastSaved
	return &t
}

// Load reads the stored snapshot for this form. It returns the data and true
// when a parsable draft exists; a missing or corrupt entry returns (nil,
// false) with no error raised. A successful load records the stored
// timestamp and marks the store not-dirty.
func (s *Store) Load(ctx context.Context) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil, false
	}

	raw, err := s.kv.Get(s.key())
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.metrics.IncLoadFailure(metricsLabel)
			if s.logg != nil {
				s.logg.Warn(s.logCtx(ctx), "draft.load_failed: "+err.Error())
			}
		}
		return nil, false
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.metrics.IncLoadFailure(metricsLabel)
		return nil, false
	}

	if parsed, err := time.Parse(time.RFC3339, record.Timestamp); err == nil {
		s.lastSaved = &parsed
	}
	s.dirty = false
	return record.Data, true
}

// Save overwrites the stored snapshot for this form unconditionally
// (last-write-wins, no merge) and marks the store dirty. Debouncing is the
// caller's job; Save itself always writes.
func (s *Store) Save(ctx context.Context, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	now := s.now()
	record := Record{Data: data, Timestamp: now.Format(time.RFC3339)}
	raw, err := json.Marshal(record)
	if err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		if s.logg != nil {
			s.logg.Error(s.logCtx(ctx), "draft.encode_failed", err)
		}
		return
	}

	// drafts persist until explicitly cleared, so no TTL
	if err := s.kv.Set(s.key(), string(raw), 0); err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		if s.logg != nil {
			s.logg.Error(s.logCtx(ctx), "draft.save_failed", err)
		}
		return
	}

	s.metrics.IncWriteSuccess(metricsLabel)
	s.lastSaved = &now
	s.dirty = true
}

// Clear deletes the stored snapshot and resets the dirty flag and last-saved
// marker. Called on successful submit or explicit discard.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	if err := s.kv.Delete(s.key()); err != nil {
		s.metrics.IncWriteFailure(metricsLabel)
		if s.logg != nil {
			s.logg.Error(s.logCtx(ctx), "draft.clear_failed", err)
		}
		return
	}

	s.metrics.IncWriteSuccess(metricsLabel)
	s.lastSaved = nil
	s.dirty = false
}

func (s *Store) key() string {
	return keyPrefix + s.formID
}

func (s *Store) logCtx(ctx context.Context) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithFormID(ctx, s.formID)
}
