package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StateStoreMetrics records the health of the durable mirror underneath the
// cart and draft stores. Mirror failures are swallowed at the store layer, so
// these counters are the only place they stay visible.
type StateStoreMetrics struct {
	writeSuccess *prometheus.CounterVec
	writeFailure *prometheus.CounterVec
	loadFailure  *prometheus.CounterVec
}

// NewStateStoreMetrics registers the state-store metrics on the provided
// registerer.
func NewStateStoreMetrics(reg prometheus.Registerer) *StateStoreMetrics {
	if reg == nil {
		return &StateStoreMetrics{}
	}
	writeSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mirror_write_success",
		Help: "Successful durable mirror writes.",
	}, []string{"store"})
	writeFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mirror_write_failure",
		Help: "Durable mirror writes that failed and were swallowed.",
	}, []string{"store"})
	loadFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mirror_load_failure",
		Help: "Mirror reads that were absent, expired, or unparsable.",
	}, []string{"store"})
	reg.MustRegister(writeSuccess, writeFailure, loadFailure)
	return &StateStoreMetrics{
		writeSuccess: writeSuccess,
		writeFailure: writeFailure,
		loadFailure:  loadFailure,
	}
}

// IncWriteSuccess increments the success counter for the named store.
func (m *StateStoreMetrics) IncWriteSuccess(store string) {
	if m == nil || m.writeSuccess == nil {
		return
	}
	m.writeSuccess.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncWriteFailure increments the failure counter for the named store.
func (m *StateStoreMetrics) IncWriteFailure(store string) {
	if m == nil || m.writeFailure == nil {
		return
	}
	m.writeFailure.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncLoadFailure increments the load-failure counter for the named store.
func (m *StateStoreMetrics) IncLoadFailure(store string) {
	if m == nil || m.loadFailure == nil {
		return
	}
	m.loadFailure.WithLabelValues(normalizeLabel(store)).Inc()
}

func normalizeLabel(store string) string {
	if store == "" {
		return "unknown"
	}
	return store
}
