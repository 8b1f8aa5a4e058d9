package spearmint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsSet holds the optional Prometheus instrumentation. The library
// never exposes an HTTP endpoint itself; callers register a metrics set via
// WithMetrics and mount promhttp wherever they serve from.
type metricsSet struct {
	suggestions   *prometheus.CounterVec
	updates       prometheus.Counter
	engineLatency prometheus.Histogram
}

func newMetricsSet(reg prometheus.Registerer) *metricsSet {
	factory := promauto.With(reg)
	return &metricsSet{
		suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spearmint",
			Name:      "suggestions_total",
			Help:      "Trials suggested, split by random vs model-based mode.",
		}, []string{"mode"}),
		updates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "spearmint",
			Name:      "observations_total",
			Help:      "Observations recorded via Update.",
		}),
		engineLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spearmint",
			Name:      "engine_suggest_duration_seconds",
			Help:      "Wall time of engine fit-and-suggest calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *metricsSet) countSuggestion(mode string) {
	if m == nil {
		return
	}
	m.suggestions.WithLabelValues(mode).Inc()
}

func (m *metricsSet) countUpdate() {
	if m == nil {
		return
	}
	m.updates.Inc()
}

func (m *metricsSet) observeEngine(d time.Duration) {
	if m == nil {
		return
	}
	m.engineLatency.Observe(d.Seconds())
}
