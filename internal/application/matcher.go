package application

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/votolimpio/scoring-engine/internal/normalize"
)

// Matching errors. Both outcomes mean the group goes to manual review;
// the matcher never silently picks a best guess.
var (
	// ErrNoMatch is returned when no candidate clears the similarity
	// threshold.
	ErrNoMatch = errors.New("no plausible name match")

	// ErrAmbiguousMatch is returned when more than one candidate clears
	// the similarity threshold.
	ErrAmbiguousMatch = errors.New("ambiguous name match")
)

// NameMatcher links person names across records using normalized
// Levenshtein similarity with an explicit confidence threshold.
// Comparison happens on the canon form (accent stripped, case folded), so
// "JUAN PÉREZ" and "juan perez" are identical before any edit distance is
// paid. The matcher is stateless and safe for concurrent use.
type NameMatcher struct {
	threshold float64
}

// NewNameMatcher creates a matcher with the given similarity threshold in
// [0,1].
func NewNameMatcher(threshold float64) (*NameMatcher, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("match threshold %.2f outside [0,1]", threshold)
	}
	return &NameMatcher{threshold: threshold}, nil
}

// Similarity returns the normalized similarity of two names in [0,1],
// where 1.0 means the canon forms are identical.
func (m *NameMatcher) Similarity(a, b string) float64 {
	ca, cb := normalize.Canon(a), normalize.Canon(b)
	if ca == cb {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(ca, cb)

	// Normalize by rune count: the distance operates on runes and byte
	// lengths overcount multi-byte characters.
	maxLen := utf8.RuneCountInString(ca)
	if n := utf8.RuneCountInString(cb); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		similarity = 0
	}
	return similarity
}

// Match finds the single pool entry plausibly naming the same person.
// It returns ErrNoMatch when nothing clears the threshold and
// ErrAmbiguousMatch when more than one entry does; only an unambiguous
// single match returns an index.
func (m *NameMatcher) Match(name string, pool []string) (int, error) {
	matched := -1
	count := 0
	for i, candidate := range pool {
		if m.Similarity(name, candidate) >= m.threshold {
			matched = i
			count++
		}
	}

	switch count {
	case 0:
		return -1, fmt.Errorf("%w: %q", ErrNoMatch, name)
	case 1:
		return matched, nil
	default:
		return -1, fmt.Errorf("%w: %q matches %d entries", ErrAmbiguousMatch, name, count)
	}
}
