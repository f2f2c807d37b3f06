package shared

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarmatch_requests_total",
			Help: "Total number of handled API requests",
		},
		[]string{"handler", "outcome"},
	)

	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarmatch_backend_calls_total",
			Help: "Total number of record backend calls",
		},
		[]string{"table", "operation", "outcome"},
	)

	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scholarmatch_backend_call_duration_seconds",
			Help: "Duration of record backend calls in seconds",
		},
		[]string{"table", "operation"},
	)

	FallbackServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scholarmatch_fallback_catalog_served_total",
			Help: "Times the hardcoded fallback catalog was substituted for backend data",
		},
	)

	MatchesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scholarmatch_matches_generated_total",
			Help: "Total number of match records generated",
		},
	)
)
