package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outbound retrieval-backend call metrics. Registered explicitly from
// main (no init()) so tests importing this package stay silent.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "georetrieve",
			Name:      "backend_requests_total",
			Help:      "Total retrieval backend calls by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "georetrieve",
			Name:      "backend_request_duration_seconds",
			Help:      "Retrieval backend call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	AnalyticsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "georetrieve",
			Name:      "analytics_cache_total",
			Help:      "Analytics cache lookups by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)
)

// RegisterBackendMetrics registers outbound call metrics with the
// default registry.
func RegisterBackendMetrics() {
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(AnalyticsCacheTotal)
}
