package ports

import (
	"context"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// ProposalEvaluator scores one government-plan proposal along the four
// quality dimensions (specificity, viability, impact, evidence), each on a
// 0-10 scale. Implementations call an LLM provider; the batch engine only
// consumes stored aggregates, so evaluators run upstream of recompute.
// Implementations must be safe for concurrent use.
type ProposalEvaluator interface {
	// Evaluate scores a single proposal text. A malformed model response
	// degrades to zero dimensions rather than failing the evaluation.
	Evaluate(ctx context.Context, proposal string) (domain.ProposalEvaluation, error)

	// Model returns the provider/model identifier used for evaluation.
	Model() string
}
