package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videotube_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ViewDuration records how long each composed read-model view takes.
	ViewDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videotube_view_duration_seconds",
		Help:    "Read-model composition latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	// ViewErrors counts failed view compositions by view and error code.
	ViewErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_view_errors_total",
		Help: "Total number of failed read-model compositions",
	}, []string{"view", "code"})

	// ToggleTotal counts toggle outcomes by kind and resulting state.
	ToggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_toggle_total",
		Help: "Total number of toggle operations by kind and resulting state",
	}, []string{"kind", "state"})

	// ToggleConflictRetries counts toggle attempts retried after a uniqueness conflict.
	ToggleConflictRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_toggle_conflict_retries_total",
		Help: "Total number of toggle retries caused by concurrent writers",
	}, []string{"kind"})

	// ViewCountFailures counts increment-on-read writes that failed and were dropped.
	ViewCountFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videotube_view_count_failures_total",
		Help: "Total number of dropped view-count increments",
	})

	// RateLimitHits counts requests rejected by the Redis rate limiter.
	RateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_rate_limit_hits_total",
		Help: "Total number of requests rejected by rate limiting",
	}, []string{"resource"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackView returns a function that records the view latency and, when err
// is non-nil, the failure code.
func TrackView(view string) func(code string) {
	start := time.Now()
	return func(code string) {
		ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
		if code != "" {
			ViewErrors.WithLabelValues(view, code).Inc()
		}
	}
}
