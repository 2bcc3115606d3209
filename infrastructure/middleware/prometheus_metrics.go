// Package middleware provides cross-cutting concerns for the scoring
// engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/votolimpio/scoring-engine/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It exposes batch-recompute throughput, failure counts,
// reconciliation outcomes and last-run freshness.
type PrometheusMetrics struct {
	candidatesScored     prometheus.Counter
	candidateFailures    prometheus.Counter
	reconciliationGroups *prometheus.CounterVec
	recomputeDuration    prometheus.Histogram
	lastRunTimestamp     prometheus.Gauge
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics in the given registry. A nil registry uses the global
// default.
func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		candidatesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoring_candidates_scored_total",
			Help: "Total number of candidates scored and persisted.",
		}),
		candidateFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoring_candidate_failures_total",
			Help: "Total number of candidates skipped due to scoring or persistence failures.",
		}),
		reconciliationGroups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoring_reconciliation_groups_total",
				Help: "Total number of sibling name groups processed, by outcome.",
			},
			[]string{"outcome"},
		),
		recomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoring_recompute_duration_seconds",
			Help:    "End-to-end recompute latency per candidate.",
			Buckets: prometheus.DefBuckets,
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scoring_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed batch run.",
		}),
	}
}

// RecordCandidateScored implements the MetricsCollector interface.
func (pm *PrometheusMetrics) RecordCandidateScored(duration time.Duration) {
	pm.candidatesScored.Inc()
	pm.recomputeDuration.Observe(duration.Seconds())
}

// RecordCandidateFailure implements the MetricsCollector interface.
func (pm *PrometheusMetrics) RecordCandidateFailure() {
	pm.candidateFailures.Inc()
}

// RecordReconciliation implements the MetricsCollector interface.
func (pm *PrometheusMetrics) RecordReconciliation(outcome string) {
	pm.reconciliationGroups.WithLabelValues(outcome).Inc()
}

// SetLastRun implements the MetricsCollector interface.
func (pm *PrometheusMetrics) SetLastRun(t time.Time) {
	pm.lastRunTimestamp.Set(float64(t.Unix()))
}
