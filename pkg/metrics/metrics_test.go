package metrics

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCatalogMetricsExportsLoadsAndSnapshotSize(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCatalogMetrics(reg)
	metrics.ObserveLoad(120*time.Millisecond, 42, 3)
	metrics.ObserveFailure(10 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_loads_total", "result", "success"); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "catalog_loads_total", "result", "failure"); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}
	if got := fetchGaugeValue(mfs, "catalog_items"); got != 42 {
		t.Fatalf("expected 42 items, got %f", got)
	}
	if got := fetchGaugeValue(mfs, "catalog_rejected_records"); got != 3 {
		t.Fatalf("expected 3 rejected, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "catalog_load_duration_seconds", "result", "success"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestFavoritesMetricsCountsDirections(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewFavoritesMetrics(reg)
	metrics.IncToggle(true)
	metrics.IncToggle(true)
	metrics.IncToggle(false)
	metrics.IncPersistFailure("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, _ := fetchCounterValue(mfs, "favorites_toggles_total", "direction", "added"); got != 2 {
		t.Fatalf("expected added=2, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "favorites_toggles_total", "direction", "removed"); got != 1 {
		t.Fatalf("expected removed=1, got %f", got)
	}
	if got, _ := fetchCounterValue(mfs, "favorites_persist_failures_total", "backend", "unknown"); got != 1 {
		t.Fatalf("expected unknown backend failure=1, got %f", got)
	}
}

func TestHTTPMetricsObservesRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest(http.MethodGet, "/api/v1/perfumes", http.StatusOK, 5*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/v1/perfumes"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewCatalogMetrics(nil).ObserveLoad(time.Second, 1, 0)
	NewFavoritesMetrics(nil).IncToggle(true)
	NewHTTPMetrics(nil).ObserveRequest(http.MethodGet, "/", 200, time.Second)

	var nilCatalog *CatalogMetrics
	nilCatalog.ObserveFailure(time.Second)
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

func fetchGaugeValue(mfs []*dto.MetricFamily, name string) float64 {
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		return -1
	}
	return mf.GetMetric()[0].GetGauge().GetValue()
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
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
