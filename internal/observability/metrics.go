// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelationshipTransitions counts relationship operations by operation and outcome code.
	RelationshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganboo_relationship_transitions_total",
		Help: "Total relationship operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// StoreConflicts counts pair transactions that lost an optimistic concurrency race.
	StoreConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganboo_store_conflicts_total",
		Help: "Total storage conflicts observed by pair transactions",
	}, []string{"operation"})

	// LookupResults records how many candidates a code lookup returned.
	LookupResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ganboo_lookup_results",
		Help:    "Number of candidates returned by code lookups",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	// DatabaseQueryLatency records store latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ganboo_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrorRate counts Redis errors by command.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganboo_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordTransition increments the transition counter for an operation outcome.
func RecordTransition(operation, outcome string) {
	RelationshipTransitions.WithLabelValues(operation, outcome).Inc()
}
