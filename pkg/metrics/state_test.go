package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStateStoreMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStateStoreMetrics(reg)

	metrics.IncWriteSuccess("cart")
	metrics.IncWriteSuccess("cart")
	metrics.IncWriteFailure("draft")
	metrics.IncLoadFailure("cart")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "state_mirror_write_success", "store", "cart"); err != nil {
		t.Fatalf("fetch write success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected write success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "state_mirror_write_failure", "store", "draft"); err != nil {
		t.Fatalf("fetch write failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected write failure=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "state_mirror_load_failure", "store", "cart"); err != nil {
		t.Fatalf("fetch load failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected load failure=1, got %f", got)
	}
}

func TestStateStoreMetricsNilRegistererIsInert(t *testing.T) {
	metrics := NewStateStoreMetrics(nil)
	metrics.IncWriteSuccess("cart")
	metrics.IncWriteFailure("cart")
	metrics.IncLoadFailure("cart")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
