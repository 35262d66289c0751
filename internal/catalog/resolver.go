package catalog

import (
	"strings"
)

// defaultHeuristicPrefixes are the two-character label prefixes that get the
// extra numeric-remainder matching layer. These correspond to label series
// whose scanners routinely truncate or pad the numeric part.
var defaultHeuristicPrefixes = []string{"BP", "LA"}

// Resolver maps an arbitrary scanned token to a canonical item id using a
// layered matching strategy. Each layer trades precision for recall; the
// layers run in a fixed order so the looser ones can never shadow an exact
// match. Physical scanners and manual entry produce inconsistent formatting
// (spacing, case, partial codes), which is why a plain map lookup is not
// enough.
type Resolver struct {
	index    *Index
	prefixes []string
}

// NewResolver creates a resolver over the given index with the default
// heuristic prefixes.
func NewResolver(index *Index) *Resolver {
	return NewResolverWithPrefixes(index, defaultHeuristicPrefixes)
}

// NewResolverWithPrefixes creates a resolver with a custom heuristic prefix
// set, e.g. from configuration.
func NewResolverWithPrefixes(index *Index, prefixes []string) *Resolver {
	return &Resolver{index: index, prefixes: prefixes}
}

// Resolve maps rawToken to a canonical item id. A direct barcode lookup runs
// first (most scans are plain EANs), then the id-matching layers in strict
// order, stopping at the first success:
//
//  1. exact match on a canonical id
//  2. normalized match (trim, dash spacing, case fold)
//  3. dash-free match
//  4. prefix containment: the token is a prefix of a known id or vice versa
//  5. two-letter-prefix numeric-remainder heuristic
//
// Layers 4 and 5 iterate over sorted ids, so the first match is reproducible
// but still a heuristic: it is not guaranteed to be the unique right answer
// when several ids share a prefix. As written, layer 4 subsumes layer 5: a
// token and id with the same two-letter prefix and numeric remainders in a
// prefix relation are themselves in a whole-string prefix relation, so
// prefixed tokens resolve at layer 4 and layer 5 only fires if layer 4 is
// ever made stricter. Returns ("", false) when every layer
// fails; the caller must treat such a token as unscannable and must not
// silently create a new item for it.
func (r *Resolver) Resolve(rawToken string) (string, bool) {
	if rawToken == "" {
		return "", false
	}

	// 0. Direct barcode lookup.
	if entry, ok := r.index.barcodes[rawToken]; ok {
		return entry.CanonicalID, true
	}

	// 1. Exact.
	if _, ok := r.index.exact[rawToken]; ok {
		return rawToken, true
	}

	// 2. Normalized.
	if entry, ok := r.index.normalized[Normalize(rawToken)]; ok {
		return entry.CanonicalID, true
	}

	// 3. Dash-free.
	if entry, ok := r.index.dashFree[StripDashes(rawToken)]; ok {
		return entry.CanonicalID, true
	}

	// 4. Prefix containment over sorted ids.
	for _, knownID := range r.index.sortedIDs {
		if strings.HasPrefix(knownID, rawToken) || strings.HasPrefix(rawToken, knownID) {
			return knownID, true
		}
	}

	// 5. Numeric-remainder heuristic for the configured label prefixes.
	// Every pair this layer accepts (same prefix, remainders in a prefix
	// relation) is already a whole-string prefix pair, so layer 4 answers
	// first. The layer is kept for its place in the documented order and
	// becomes reachable only if layer 4 is ever tightened.
	for _, prefix := range r.prefixes {
		if !strings.HasPrefix(rawToken, prefix) {
			continue
		}
		numPart := rawToken[len(prefix):]
		for _, knownID := range r.index.sortedIDs {
			if !strings.HasPrefix(knownID, prefix) {
				continue
			}
			knownNumPart := knownID[len(prefix):]
			if knownNumPart == numPart ||
				strings.HasPrefix(knownNumPart, numPart) ||
				strings.HasPrefix(numPart, knownNumPart) {
				return knownID, true
			}
		}
	}

	return "", false
}
