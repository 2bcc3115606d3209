package evaluator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

// OpenAIDefaultModel is used when the configuration names no model.
const OpenAIDefaultModel = "gpt-4o-mini"

// OpenAIEvaluator implements the proposal evaluator port against OpenAI's
// chat completion API.
type OpenAIEvaluator struct {
	client      *openai.Client
	model       string
	limiter     *rate.Limiter
	tracer      trace.Tracer
	maxTokens   int
	temperature float32
}

var _ ports.ProposalEvaluator = (*OpenAIEvaluator)(nil)

// NewOpenAIEvaluator creates an evaluator with a validated configuration.
func NewOpenAIEvaluator(config Config) (*OpenAIEvaluator, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("evaluator configuration validation failed: %w", err)
	}

	model := config.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIEvaluator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		limiter:     rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		tracer:      otel.Tracer("scoring-engine/evaluator"),
		maxTokens:   config.MaxTokens,
		temperature: float32(config.Temperature),
	}, nil
}

// Model returns the provider/model identifier.
func (e *OpenAIEvaluator) Model() string { return "openai/" + e.model }

// Evaluate rates one proposal text. The limiter blocks until a request
// token is available; a malformed model response degrades to zero
// dimensions instead of failing.
func (e *OpenAIEvaluator) Evaluate(ctx context.Context, proposal string) (domain.ProposalEvaluation, error) {
	ctx, span := e.tracer.Start(ctx, "OpenAIEvaluator.Evaluate",
		trace.WithAttributes(attribute.String("model", e.model)),
	)
	defer span.End()

	if err := e.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return domain.ProposalEvaluation{}, ports.NewEvaluatorError(e.Model(), "rate_limit", err)
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: proposal},
		},
	})
	if err != nil {
		wrapped := e.wrapError(err)
		span.RecordError(wrapped)
		return domain.ProposalEvaluation{}, wrapped
	}

	if len(resp.Choices) == 0 {
		err := ports.NewEvaluatorError(e.Model(), "evaluate",
			fmt.Errorf("no completion choices: %w", ports.ErrInvalidResponse))
		span.RecordError(err)
		return domain.ProposalEvaluation{}, err
	}

	evaluation := parseEvaluation(resp.Choices[0].Message.Content)
	span.SetAttributes(attribute.Float64("evaluation.overall", evaluation.OverallQuality()))
	return evaluation, nil
}

// wrapError classifies provider failures into the port's typed errors so
// callers can decide retryability without knowing the provider.
func (e *OpenAIEvaluator) wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ports.NewEvaluatorError(e.Model(), "evaluate",
			fmt.Errorf("%w: %v", ports.ErrTimeout, err))
	}
	if errors.Is(err, context.Canceled) {
		return ports.NewEvaluatorError(e.Model(), "evaluate", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
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
