// Package evaluator provides LLM-backed implementations of the proposal
// evaluator port. Each adapter asks its provider to rate a government-plan
// proposal along four 0-10 dimensions and parses the structured response.
// Evaluators run upstream of batch scoring; the engine only reads the
// stored aggregates.
package evaluator

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// Package-level validator instance for evaluator configuration.
var validate = validator.New()

// systemPrompt instructs the model to return only the four-dimension
// JSON object. Keeping the contract in the system prompt makes the
// response parseable without tool-calling support.
const systemPrompt = `You are an expert policy analyst evaluating a government-plan proposal.
Rate the proposal on four dimensions, each from 0 to 10:
- specificity: how concrete and measurable the proposal is
- viability: how feasible it is legally, fiscally and institutionally
- impact: how much it would improve the problem it targets
- evidence: how well it cites data, precedent or studies

Respond with ONLY a JSON object in exactly this shape, no prose:
{"specificity": 0, "viability": 0, "impact": 0, "evidence": 0}`

// Config holds the provider-independent evaluator settings.
type Config struct {
	// APIKey authenticates against the provider.
	APIKey string `yaml:"api_key" validate:"required"`

	// Model overrides the provider's default model when non-empty.
	Model string `yaml:"model"`

	// BaseURL overrides the provider endpoint, mainly for proxies.
	BaseURL string `yaml:"base_url"`

	// RequestsPerSecond is the sustained request rate; Burst allows short
	// spikes above it.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"min=1"`

	// MaxTokens bounds the response size. The expected response is a
	// short JSON object, so the default is small.
	MaxTokens int `yaml:"max_tokens" validate:"min=1"`

	// Temperature controls sampling; evaluations want determinism.
	Temperature float64 `yaml:"temperature" validate:"min=0,max=2"`
}

// DefaultConfig returns conservative production defaults: two requests
// per second with a small burst and near-deterministic sampling.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:            apiKey,
		RequestsPerSecond: 2,
		Burst:             4,
		MaxTokens:         256,
		Temperature:       0.1,
	}
}

// dimensionsPayload mirrors the JSON object the prompt demands.
type dimensionsPayload struct {
	Specificity float64 `json:"specificity"`
	Viability   float64 `json:"viability"`
	Impact      float64 `json:"impact"`
	Evidence    float64 `json:"evidence"`
}

// parseEvaluation extracts the dimensions object from a model response.
// Models occasionally wrap the JSON in code fences or prose, so parsing
// starts at the first brace. A response with no parseable object degrades
// to all-zero dimensions; a missing proposal scores zero rather than
// failing the batch.
func parseEvaluation(content string) domain.ProposalEvaluation {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return domain.ProposalEvaluation{}
	}

	var payload dimensionsPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return domain.ProposalEvaluation{}
	}

	return domain.ProposalEvaluation{
		Specificity: clampDimension(payload.Specificity),
		Viability:   clampDimension(payload.Viability),
		Impact:      clampDimension(payload.Impact),
		Evidence:    clampDimension(payload.Evidence),
	}
}

// clampDimension bounds one dimension to the 0-10 rubric.
func clampDimension(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
