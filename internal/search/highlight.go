package search

import (
	"strings"
	"unicode"
)

// Field names used in FieldMatch, matching what the caller displays.
const (
	FieldID          = "id"
	FieldDescription = "description"
	FieldBarcode     = "barcode"
)

// Span is a half-open byte range [Start, End) into the matched field value.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FieldMatch carries the highlight spans for one displayed field, enough for
// the caller to mark the matched substrings.
type FieldMatch struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Spans []Span `json:"spans"`
}

// matchSpans finds the highlightable occurrences of queryLower in value.
// Numeric queries only match at numeric token boundaries: the occurrence must
// start at the beginning of the string or after a non-digit, and end at the
// end of the string or before a non-digit. Highlighting "100" in the middle
// of "1005" would mislead the operator. Word queries match at word
// boundaries (start of string or after a non-alphanumeric rune).
func matchSpans(value, queryLower string, numeric bool) []Span {
	if queryLower == "" {
		return nil
	}
	valueLower := strings.ToLower(value)

	var spans []Span
	offset := 0
	for {
		idx := strings.Index(valueLower[offset:], queryLower)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(queryLower)

		if numeric {
			if numericBoundary(valueLower, start, end) {
				spans = append(spans, Span{Start: start, End: end})
			}
		} else if wordBoundary(valueLower, start) {
			spans = append(spans, Span{Start: start, End: end})
		}

		offset = start + 1
	}
	return spans
}

func numericBoundary(s string, start, end int) bool {
	if start > 0 && isDigitByte(s[start-1]) {
		return false
	}
	if end < len(s) && isDigitByte(s[end]) {
		return false
	}
	return true
}

func wordBoundary(s string, start int) bool {
	if start == 0 {
		return true
	}
	prev := rune(s[start-1])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// containsWholeWord reports whether queryLower appears in textLower as a
// complete word.
func containsWholeWord(textLower, queryLower string) bool {
	for _, word := range strings.FieldsFunc(textLower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if word == queryLower {
			return true
		}
	}
	return false
}
