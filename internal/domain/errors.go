package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during scoring operations.
var (
	// ErrInvalidCargo indicates an unrecognized ballot position.
	ErrInvalidCargo = errors.New("invalid cargo")

	// ErrEmptyCandidateID indicates a candidate without an identifier.
	ErrEmptyCandidateID = errors.New("empty candidate id")

	// ErrInvalidConfiguration indicates that configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrBreakdownMismatch indicates that the itemized breakdown does not
	// reproduce the persisted integrity score.
	ErrBreakdownMismatch = errors.New("breakdown does not reproduce integrity score")
)

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}

// VerifyBreakdown checks the audit invariant between a persisted score and
// its breakdown: applying the itemized terms to the base must reproduce the
// integrity value exactly (within floating-point tolerance).
func VerifyBreakdown(score Score, breakdown ScoreBreakdown) error {
	const epsilon = 1e-9
	diff := score.Integrity - breakdown.IntegrityTotal()
	if diff > epsilon || diff < -epsilon {
		return fmt.Errorf("%w: candidate=%s, integrity=%.6f, breakdown=%.6f",
			ErrBreakdownMismatch, score.CandidateID, score.Integrity, breakdown.IntegrityTotal())
	}
	return nil
}
