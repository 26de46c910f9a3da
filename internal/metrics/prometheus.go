package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes analysis counters and latencies to Prometheus.
type Recorder struct {
	analyses       *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	entityFallback prometheus.Counter
	latency        *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsentiment_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"category", "provider"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsentiment_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsentiment_cache_lookups_total",
				Help: "Classification cache lookups by result",
			},
			[]string{"result"},
		),
		entityFallback: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "marketsentiment_entity_fallback_total",
				Help: "Analyses where no allow-listed entity matched and all entities were returned",
			},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketsentiment_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordAnalysis(category, provider string) {
	r.analyses.WithLabelValues(category, provider).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordEntityFallback() {
	r.entityFallback.Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
