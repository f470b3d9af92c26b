// Package metrics holds the Prometheus collectors for the resilience layer
// and the freight provider call path.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CircuitTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"circuit", "from", "to"},
	)

	CircuitRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejections_total",
			Help: "Total number of calls rejected by an open circuit",
		},
		[]string{"circuit"},
	)

	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_hits_total",
			Help: "Total number of provider cache hits",
		},
		[]string{"operation"},
	)

	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_misses_total",
			Help: "Total number of provider cache misses",
		},
		[]string{"operation"},
	)

	ProviderCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_call_duration_seconds",
			Help:    "Duration of external provider calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation", "outcome"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(CircuitTransitionsTotal)
	prometheus.MustRegister(CircuitRejectionsTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ProviderCallDuration)
}
