// Package units provides the per-category penalty, bonus and score
// calculators of the scoring engine. Each unit is a pure function over
// canonical records with a validated, externally configurable set of
// weights and caps.
package units

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Severity labels the screening outcome of a category: red findings weigh
// heavier than amber ones, none means the category is clean.
type Severity string

// Screening severities used by the civil and REINFO calculators.
const (
	SeverityNone  Severity = "none"
	SeverityAmber Severity = "amber"
	SeverityRed   Severity = "red"
)

// Common errors returned by calculator units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an
	// empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
