package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records catalog load outcomes.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	loads    *prometheus.CounterVec
	items    prometheus.Gauge
	rejected prometheus.Gauge
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog fetch and parse in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Catalog load attempts by result.",
	}, []string{"result"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_items",
		Help: "Items in the current catalog snapshot.",
	})
	rejected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_rejected_records",
		Help: "Records dropped from the current catalog snapshot for missing identity fields.",
	})
	reg.MustRegister(duration, loads, items, rejected)
	return &CatalogMetrics{
		duration: duration,
		loads:    loads,
		items:    items,
		rejected: rejected,
	}
}

// ObserveLoad records a successful load and the resulting snapshot size.
func (c *CatalogMetrics) ObserveLoad(duration time.Duration, items, rejected int) {
	if c == nil || c.loads == nil {
		return
	}
	c.duration.WithLabelValues("success").Observe(duration.Seconds())
	c.loads.WithLabelValues("success").Inc()
	c.items.Set(float64(items))
	c.rejected.Set(float64(rejected))
}

// ObserveFailure records a failed load attempt.
func (c *CatalogMetrics) ObserveFailure(duration time.Duration) {
	if c == nil || c.loads == nil {
		return
	}
	c.duration.WithLabelValues("failure").Observe(duration.Seconds())
	c.loads.WithLabelValues("failure").Inc()
}
