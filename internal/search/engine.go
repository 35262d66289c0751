package search

import (
	"sort"
	"strings"
)

// MaxResults caps every result set; interactive lookup never needs more and
// the cap bounds search cost over large catalogs.
const MaxResults = 15

// Scoring table. The highest-value matching rule per field wins; multiple
// rules on the same field are never double counted. Fields are independent
// signals and sum into the total.
const (
	scoreIDExact       = 100
	scoreIDStartsWith  = 75
	scoreIDContains    = 50
	scoreDescExact     = 90
	scoreDescStarts    = 65
	scoreDescContains  = 40
	scoreDescWholeWord = 50 // bonus on top of the description rule
	scoreBarcodeExact  = 95
	scoreBarcodeStarts = 70
	scoreBarcodeHas    = 45
)

// MatchType classifies the strongest rule that fired on any field.
type MatchType string

const (
	MatchNone       MatchType = "NONE"
	MatchExact      MatchType = "EXACT"
	MatchStartsWith MatchType = "STARTS_WITH"
	MatchContains   MatchType = "CONTAINS"
)

// Candidate is one searchable catalog or list entry.
type Candidate struct {
	ID          string
	Description string
	Barcodes    []string
}

// RankedItem is a transient, per-query search result. Never persisted.
type RankedItem struct {
	ID            string       `json:"id"`
	Description   string       `json:"description,omitempty"`
	Barcodes      []string     `json:"barcodes,omitempty"`
	Score         int          `json:"score"`
	MatchType     MatchType    `json:"matchType"`
	InCurrentList bool         `json:"inCurrentList"`
	Matches       []FieldMatch `json:"matches,omitempty"`

	// boundaryMatch notes that the id containment sat on a token boundary;
	// used only as a tie-break so "ABC-100" outranks "XYZ-1005" for "100".
	boundaryMatch bool
}

// Engine scores and orders candidates against free-text queries.
type Engine struct {
	maxResults int
}

// NewEngine creates an engine with the default result cap.
func NewEngine() *Engine {
	return &Engine{maxResults: MaxResults}
}

// Search scores every candidate against query and returns the ordered, capped
// result set. inCurrentList reports membership in the active workflow's list
// and may be nil.
//
// Ordering: members of the current list first, then descending score, then
// boundary matches before mid-string ones, then ascending id. An empty query
// skips scoring and membership entirely and returns the candidates in
// ascending lexical id order. Same query plus same candidates always yields
// the same ordered output.
func (e *Engine) Search(query string, candidates []Candidate, inCurrentList func(id string) bool) []RankedItem {
	query = strings.TrimSpace(query)

	if query == "" {
		return e.listAll(candidates)
	}

	queryLower := strings.ToLower(query)
	numeric := isNumeric(queryLower)

	results := make([]RankedItem, 0, len(candidates))
	for _, cand := range candidates {
		item := e.score(cand, queryLower, numeric)
		if item.Score == 0 {
			continue
		}
		if inCurrentList != nil {
			item.InCurrentList = inCurrentList(cand.ID)
		}
		results = append(results, item)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.InCurrentList != b.InCurrentList {
			return a.InCurrentList
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.boundaryMatch != b.boundaryMatch {
			return a.boundaryMatch
		}
		return a.ID < b.ID
	})

	if len(results) > e.maxResults {
		results = results[:e.maxResults]
	}
	return results
}

func (e *Engine) listAll(candidates []Candidate) []RankedItem {
	results := make([]RankedItem, 0, len(candidates))
	for _, cand := range candidates {
		results = append(results, RankedItem{
			ID:          cand.ID,
			Description: cand.Description,
			Barcodes:    cand.Barcodes,
			MatchType:   MatchNone,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	if len(results) > e.maxResults {
		results = results[:e.maxResults]
	}
	return results
}

func (e *Engine) score(cand Candidate, queryLower string, numeric bool) RankedItem {
	item := RankedItem{
		ID:          cand.ID,
		Description: cand.Description,
		Barcodes:    cand.Barcodes,
		MatchType:   MatchNone,
	}

	// Item id signal.
	idLower := strings.ToLower(cand.ID)
	switch {
	case idLower == queryLower:
		item.Score += scoreIDExact
		item.promote(MatchExact)
	case strings.HasPrefix(idLower, queryLower):
		item.Score += scoreIDStartsWith
		item.promote(MatchStartsWith)
	case strings.Contains(idLower, queryLower):
		item.Score += scoreIDContains
		item.promote(MatchContains)
	}
	if spans := matchSpans(cand.ID, queryLower, numeric); len(spans) > 0 {
		item.Matches = append(item.Matches, FieldMatch{Field: FieldID, Value: cand.ID, Spans: spans})
		item.boundaryMatch = true
	}

	// Description signal, with whole-word bonus.
	if cand.Description != "" {
		descLower := strings.ToLower(cand.Description)
		switch {
		case descLower == queryLower:
			item.Score += scoreDescExact
			item.promote(MatchExact)
		case strings.HasPrefix(descLower, queryLower):
			item.Score += scoreDescStarts
			item.promote(MatchStartsWith)
		case strings.Contains(descLower, queryLower):
			item.Score += scoreDescContains
			item.promote(MatchContains)
		}
		if containsWholeWord(descLower, queryLower) {
			item.Score += scoreDescWholeWord
		}
		if spans := matchSpans(cand.Description, queryLower, numeric); len(spans) > 0 {
			item.Matches = append(item.Matches, FieldMatch{Field: FieldDescription, Value: cand.Description, Spans: spans})
		}
	}

	// Barcode signal: best rule across all barcodes on the item.
	bestBarcode := 0
	bestType := MatchNone
	for _, barcode := range cand.Barcodes {
		bcLower := strings.ToLower(barcode)
		var ruleScore int
		var ruleType MatchType
		switch {
		case bcLower == queryLower:
			ruleScore, ruleType = scoreBarcodeExact, MatchExact
		case strings.HasPrefix(bcLower, queryLower):
			ruleScore, ruleType = scoreBarcodeStarts, MatchStartsWith
		case strings.Contains(bcLower, queryLower):
			ruleScore, ruleType = scoreBarcodeHas, MatchContains
		default:
			continue
		}
		if ruleScore > bestBarcode {
			bestBarcode, bestType = ruleScore, ruleType
		}
		if spans := matchSpans(barcode, queryLower, numeric); len(spans) > 0 {
			item.Matches = append(item.Matches, FieldMatch{Field: FieldBarcode, Value: barcode, Spans: spans})
		}
	}
	if bestBarcode > 0 {
		item.Score += bestBarcode
		item.promote(bestType)
	}

	return item
}

// promote upgrades the overall match type if t is stronger.
func (ri *RankedItem) promote(t MatchType) {
	if matchRank(t) > matchRank(ri.MatchType) {
		ri.MatchType = t
	}
}

func matchRank(t MatchType) int {
	switch t {
	case MatchExact:
		return 3
	case MatchStartsWith:
		return 2
	case MatchContains:
		return 1
	}
	return 0
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
