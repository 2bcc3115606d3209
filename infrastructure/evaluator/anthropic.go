package evaluator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

// AnthropicDefaultModel is used when the configuration names no model.
const AnthropicDefaultModel = "claude-3-5-haiku-20241022"

// AnthropicEvaluator implements the proposal evaluator port against
// Anthropic's Messages API.
type AnthropicEvaluator struct {
	client      anthropic.Client
	model       string
	limiter     *rate.Limiter
	tracer      trace.Tracer
	maxTokens   int
	temperature float64
}

var _ ports.ProposalEvaluator = (*AnthropicEvaluator)(nil)

// NewAnthropicEvaluator creates an evaluator with a validated
// configuration.
func NewAnthropicEvaluator(config Config) (*AnthropicEvaluator, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("evaluator configuration validation failed: %w", err)
	}

	model := config.Model
	if model == "" {
		model = AnthropicDefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &AnthropicEvaluator{
		client:      anthropic.NewClient(opts...),
		model:       model,
		limiter:     rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		tracer:      otel.Tracer("scoring-engine/evaluator"),
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
	}, nil
}

// Model returns the provider/model identifier.
func (e *AnthropicEvaluator) Model() string { return "anthropic/" + e.model }

// Evaluate rates one proposal text. The limiter blocks until a request
// token is available; a malformed model response degrades to zero
// dimensions instead of failing.
func (e *AnthropicEvaluator) Evaluate(ctx context.Context, proposal string) (domain.ProposalEvaluation, error) {
	ctx, span := e.tracer.Start(ctx, "AnthropicEvaluator.Evaluate",
		trace.WithAttributes(attribute.String("model", e.model)),
	)
	defer span.End()

	if err := e.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return domain.ProposalEvaluation{}, ports.NewEvaluatorError(e.Model(), "rate_limit", err)
	}

	message, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.model),
		MaxTokens:   int64(e.maxTokens),
		Temperature: anthropic.Float(e.temperature),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(proposal)),
		},
	})
	if err != nil {
		wrapped := e.wrapError(err)
		span.RecordError(wrapped)
		return domain.ProposalEvaluation{}, wrapped
	}

	var responseText strings.Builder
	for _, block := range message.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			responseText.WriteString(content.Text)
		}
	}

	evaluation := parseEvaluation(responseText.String())
	span.SetAttributes(attribute.Float64("evaluation.overall", evaluation.OverallQuality()))
	return evaluation, nil
}

// wrapError classifies provider failures into the port's typed errors.
func (e *AnthropicEvaluator) wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ports.NewEvaluatorError(e.Model(), "evaluate",
			fmt.Errorf("%w: %v", ports.ErrTimeout, err))
	}
	if errors.Is(err, context.Canceled) {
		return ports.NewEvaluatorError(e.Model(), "evaluate", err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ports.NewEvaluatorError(e.Model(), "evaluate",
				fmt.Errorf("%w: %v", ports.ErrAuthenticationFailed, err))
		case http.StatusTooManyRequests:
			return ports.NewEvaluatorError(e.Model(), "evaluate",
				fmt.Errorf("%w: %v", ports.ErrRateLimited, err))
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ports.NewEvaluatorError(e.Model(), "evaluate",
				fmt.Errorf("%w: %v", ports.ErrServiceUnavailable, err))
		}
	}
	return ports.NewEvaluatorError(e.Model(), "evaluate", err)
}
