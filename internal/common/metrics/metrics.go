// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_generation_requests_total",
			Help: "Total number of lead generation requests by outcome",
		},
		[]string{"mode"}, // delegated | degraded
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadgen_generation_duration_seconds",
			Help:    "Duration of lead generation runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"mode"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadgen_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	CRMExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_crm_exports_total",
			Help: "Total number of CRM lead exports by status",
		},
		[]string{"status"},
	)
)
