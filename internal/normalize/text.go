// Package normalize converts arbitrary-shaped per-source JSON into
// canonical typed records. Normalization never fails: malformed entries
// degrade to defaulted fields so a bad record can only neutralize its own
// category.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// foldCaser is a package-level Unicode case folder for performance.
	// This avoids creating a new caser for each string preparation.
	foldCaser = cases.Fold()

	// accentStripper decomposes characters and removes combining marks,
	// turning "Contraloría" into "Contraloria".
	accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// StripAccents removes diacritical marks from s. On a transform failure
// the input is returned unchanged rather than propagating an error.
func StripAccents(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return stripped
}

// Fold lowercases s using full Unicode case folding.
func Fold(s string) string {
	return foldCaser.String(s)
}

// Canon produces the comparison form used across the engine: accent
// stripped, case folded, and whitespace trimmed. Both the sector
// dictionary and the sibling name matcher compare canon forms.
func Canon(s string) string {
	return strings.TrimSpace(Fold(StripAccents(s)))
}
