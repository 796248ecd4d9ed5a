package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ListMetrics records the service's operational metrics.
type ListMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordLevelFetch(ctx context.Context, source, outcome string)
	RecordLeaderboardSize(ctx context.Context, players int)
}

// PrometheusListMetrics implements ListMetrics with Prometheus collectors.
type PrometheusListMetrics struct {
	attempts    *prometheus.CounterVec
	successes   *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	levelFetch  *prometheus.CounterVec
	leaderboard prometheus.Gauge
}

// NewPrometheusListMetrics creates the collectors and registers them with reg.
func NewPrometheusListMetrics(reg prometheus.Registerer, namespace string) (*PrometheusListMetrics, error) {
	if namespace == "" {
		namespace = "demonlist"
	}

	m := &PrometheusListMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_success_total",
			Help:      "Service operations that completed without error.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		levelFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_fetch_total",
			Help:      "Level document reads by source and outcome.",
		}, []string{"source", "outcome"}),
		leaderboard: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leaderboard_players",
			Help:      "Players on the most recently computed leaderboard.",
		}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.levelFetch, m.leaderboard} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusListMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusListMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *PrometheusListMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *PrometheusListMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusListMetrics) RecordLevelFetch(_ context.Context, source, outcome string) {
	m.levelFetch.WithLabelValues(source, outcome).Inc()
}

func (m *PrometheusListMetrics) RecordLeaderboardSize(_ context.Context, players int) {
	m.leaderboard.Set(float64(players))
}

// NoopListMetrics discards everything.
type NoopListMetrics struct{}

// NewNoopListMetrics returns a ListMetrics that records nothing.
func NewNoopListMetrics() ListMetrics { return NoopListMetrics{} }

func (NoopListMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoopListMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoopListMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoopListMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoopListMetrics) RecordLevelFetch(context.Context, string, string)               {}
func (NoopListMetrics) RecordLeaderboardSize(context.Context, int)                     {}
