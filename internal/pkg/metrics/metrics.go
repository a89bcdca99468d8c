// Package metrics exposes Prometheus instrumentation for the assistant
// pipeline: terminal outcomes, per-stage latency and fallback activations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts assistant requests by terminal state
	// (responded, small_talk, generation_error, validation_error,
	// execution_error).
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ultron",
		Subsystem: "assistant",
		Name:      "requests_total",
		Help:      "Assistant requests by terminal outcome.",
	}, []string{"outcome"})

	// StageDuration observes per-stage latency in seconds.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ultron",
		Subsystem: "assistant",
		Name:      "stage_duration_seconds",
		Help:      "Latency of pipeline stages.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	// FallbackTotal counts activations of the constrained structured
	// execution path.
	FallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ultron",
		Subsystem: "assistant",
		Name:      "fallback_executions_total",
		Help:      "Structured fallback executions after the generic path was unavailable.",
	})

	// CacheHitsTotal counts idempotent responses served from cache.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ultron",
		Subsystem: "assistant",
		Name:      "response_cache_hits_total",
		Help:      "Assistant responses served from the short-TTL cache.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
