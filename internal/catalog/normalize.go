package catalog

import (
	"regexp"
	"strings"
)

var dashSpacing = regexp.MustCompile(`\s*-\s*`)

// Normalize canonicalizes an item id or scanned token for comparison:
// surrounding whitespace is trimmed, whitespace around dashes is collapsed
// ("ABC - 100" -> "ABC-100") and the result is lower-cased. Deterministic and
// total; an empty input yields an empty output.
func Normalize(id string) string {
	normalized := strings.TrimSpace(id)
	normalized = dashSpacing.ReplaceAllString(normalized, "-")
	return strings.ToLower(normalized)
}

// StripDashes normalizes the id and then removes every dash, so "ABC-100"
// and "abc100" compare equal.
func StripDashes(id string) string {
	return strings.ReplaceAll(Normalize(id), "-", "")
}
