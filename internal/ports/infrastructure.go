package ports

import "time"

// Reconciliation outcomes reported per sibling name group.
const (
	ReconcileOutcomePropagated = "propagated"
	ReconcileOutcomeNoop       = "noop"
	ReconcileOutcomeAmbiguous  = "ambiguous"
)

// MetricsCollector receives batch-recompute observations. Implementations
// must be safe for concurrent use; the engine calls them from worker
// goroutines.
type MetricsCollector interface {
	// RecordCandidateScored counts one successfully scored candidate and
	// its end-to-end recompute latency.
	RecordCandidateScored(duration time.Duration)

	// RecordCandidateFailure counts one candidate whose persistence or
	// scoring failed; the batch continues past it.
	RecordCandidateFailure()

	// RecordReconciliation counts one processed sibling name group with
	// its outcome (propagated, noop or ambiguous).
	RecordReconciliation(outcome string)

	// SetLastRun records the wall-clock completion time of the last batch.
	SetLastRun(t time.Time)
}

// NopMetrics is a MetricsCollector that discards all observations.
// It keeps tests and one-off runs free of a metrics backend.
type NopMetrics struct{}

// RecordCandidateScored implements MetricsCollector.
func (NopMetrics) RecordCandidateScored(time.Duration) {}

// RecordCandidateFailure implements MetricsCollector.
func (NopMetrics) RecordCandidateFailure() {}

// RecordReconciliation implements MetricsCollector.
func (NopMetrics) RecordReconciliation(string) {}

// SetLastRun implements MetricsCollector.
func (NopMetrics) SetLastRun(time.Time) {}
