package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// HTTPRequests counts handled requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// FinancingCalculations counts calculator runs by financing type and outcome.
	FinancingCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financing_calculations_total",
			Help: "Financing calculations by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	FinancingCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financing_cache_requests_total",
			Help: "Financing result cache lookups",
		},
		[]string{"result"},
	)
)
