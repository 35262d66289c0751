package search

import (
	"sort"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// BuildCandidates flattens the union of the three workflow lists and the
// barcode catalog into the searchable candidate set. Duplicate item ids
// collapse to one record, first seen wins (list entries before synthetic
// catalog entries); barcodes accumulate onto the surviving record without
// duplicates. Catalog entries are visited in sorted barcode order so the
// resulting set is deterministic.
func BuildCandidates(session *model.Session) []Candidate {
	if session == nil {
		return nil
	}

	var order []string
	byID := make(map[string]*Candidate)

	add := func(id, description string) *Candidate {
		if id == "" {
			return nil
		}
		if existing, ok := byID[id]; ok {
			if existing.Description == "" && description != "" {
				existing.Description = description
			}
			return existing
		}
		cand := &Candidate{ID: id, Description: description}
		byID[id] = cand
		order = append(order, id)
		return cand
	}

	for _, list := range []model.List{session.PickList, session.ReceiveList, session.ReturnList} {
		for _, item := range list {
			add(item.ID, item.Description)
		}
	}

	barcodes := make([]string, 0, len(session.BarcodeMapping))
	for barcode := range session.BarcodeMapping {
		barcodes = append(barcodes, barcode)
	}
	sort.Strings(barcodes)

	for _, barcode := range barcodes {
		entry := session.BarcodeMapping[barcode]
		cand := add(entry.ItemID, entry.Description)
		if cand == nil {
			continue
		}
		if !containsString(cand.Barcodes, barcode) {
			cand.Barcodes = append(cand.Barcodes, barcode)
		}
	}

	candidates := make([]Candidate, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, *byID[id])
	}
	return candidates
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
