package ports

import (
	"errors"
	"fmt"
	"time"
)

// Common infrastructure errors that can occur during repository and
// evaluator interactions.
var (
	// ErrNotFound indicates that a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates that the service has rate limited the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates that the external service is unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidResponse indicates that the service returned an invalid
	// response.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrAuthenticationFailed indicates that authentication with the
	// service failed.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// RepositoryError represents an error from a persistence operation.
// It carries the entity and operation so batch logs identify the failing
// candidate without losing the underlying cause.
type RepositoryError struct {
	// Entity identifies what was being persisted (e.g. "score", "baseline").
	Entity string

	// Operation is the name of the repository operation that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for RepositoryError.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error: operation=%s, entity=%s, err=%v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError creates a new RepositoryError with the given details.
func NewRepositoryError(entity, operation string, err error) *RepositoryError {
	return &RepositoryError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}

// EvaluatorError represents an error from a proposal-quality evaluator.
// It includes the model, operation, and any rate limit information.
type EvaluatorError struct {
	// Model is the identifier of the model that generated the error.
	Model string

	// Operation is the name of the operation that failed.
	Operation string

	// Err is the underlying error.
	Err error

	// RetryAfter indicates how long to wait before retrying, if applicable.
	RetryAfter *time.Duration
}

// Error implements the error interface for EvaluatorError.
func (e *EvaluatorError) Error() string {
	msg := fmt.Sprintf("evaluator error: model=%s, operation=%s, err=%v", e.Model, e.Operation, e.Err)
	if e.RetryAfter != nil {
		msg += fmt.Sprintf(", retry_after=%v", *e.RetryAfter)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *EvaluatorError) Unwrap() error { return e.Err }

// IsRetryable returns true if the error is temporary and the operation can
// be retried.
func (e *EvaluatorError) IsRetryable() bool {
	// Only network/service-level errors are retryable; logic errors are not.
	return errors.Is(e.Err, ErrRateLimited) ||
		errors.Is(e.Err, ErrServiceUnavailable) ||
		errors.Is(e.Err, ErrTimeout)
}

// NewEvaluatorError creates a new EvaluatorError with the given details.
func NewEvaluatorError(model, operation string, err error) *EvaluatorError {
	return &EvaluatorError{
		Model:     model,
		Operation: operation,
		Err:       err,
	}
}
