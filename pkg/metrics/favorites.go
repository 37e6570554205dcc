package metrics

import "github.com/prometheus/client_golang/prometheus"

// FavoritesMetrics counts favorites toggles and persistence failures.
type FavoritesMetrics struct {
	toggles  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func NewFavoritesMetrics(reg prometheus.Registerer) *FavoritesMetrics {
	if reg == nil {
		return &FavoritesMetrics{}
	}
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "favorites_toggles_total",
		Help: "Favorites toggles by direction.",
	}, []string{"direction"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "favorites_persist_failures_total",
		Help: "Favorites slot writes that failed.",
	}, []string{"backend"})
	reg.MustRegister(toggles, failures)
	return &FavoritesMetrics{toggles: toggles, failures: failures}
}

// IncToggle records a toggle that left the code as a member (added) or not (removed).
func (f *FavoritesMetrics) IncToggle(added bool) {
	if f == nil || f.toggles == nil {
		return
	}
	direction := "removed"
	if added {
		direction = "added"
	}
	f.toggles.WithLabelValues(direction).Inc()
}

func (f *FavoritesMetrics) IncPersistFailure(backend string) {
	if f == nil || f.failures == nil {
		return
	}
	f.failures.WithLabelValues(normalizeLabel(backend)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
