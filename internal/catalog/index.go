package catalog

import (
	"sort"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// IndexEntry is the value stored in each lookup table. It points back to the
// canonical item id and caches the catalog description and weight.
type IndexEntry struct {
	CanonicalID string
	Description string
	Weight      *float64
}

// Index is the derived lookup structure built from the barcode mapping. It is
// a pure cache: it owns no state that cannot be reconstructed from the
// mapping, and must be rebuilt whenever the mapping changes. There is no
// incremental update.
type Index struct {
	barcodes   map[string]IndexEntry
	exact      map[string]IndexEntry
	normalized map[string]IndexEntry
	dashFree   map[string]IndexEntry

	// sortedIDs holds the canonical ids in sorted order so the heuristic
	// resolver layers iterate deterministically.
	sortedIDs []string

	// barcodesByItem lists the barcodes pointing at each canonical id,
	// sorted, for search candidates.
	barcodesByItem map[string][]string
}

// NewIndex builds the three lookup tables in one pass over the mapping. When
// two entries normalize to the same key the later insertion wins; since map
// iteration order is not defined, callers must not rely on which one that is.
func NewIndex(mapping model.BarcodeMapping) *Index {
	idx := &Index{
		barcodes:       make(map[string]IndexEntry, len(mapping)),
		exact:          make(map[string]IndexEntry, len(mapping)),
		normalized:     make(map[string]IndexEntry, len(mapping)),
		dashFree:       make(map[string]IndexEntry, len(mapping)),
		barcodesByItem: make(map[string][]string),
	}

	for barcode, data := range mapping {
		if data.ItemID == "" {
			continue
		}
		entry := IndexEntry{
			CanonicalID: data.ItemID,
			Description: data.Description,
			Weight:      data.Weight,
		}
		idx.barcodes[barcode] = entry
		idx.exact[data.ItemID] = entry
		idx.normalized[Normalize(data.ItemID)] = entry
		idx.dashFree[StripDashes(data.ItemID)] = entry
		idx.barcodesByItem[data.ItemID] = append(idx.barcodesByItem[data.ItemID], barcode)
	}

	idx.sortedIDs = make([]string, 0, len(idx.exact))
	for id := range idx.exact {
		idx.sortedIDs = append(idx.sortedIDs, id)
	}
	sort.Strings(idx.sortedIDs)

	for _, barcodes := range idx.barcodesByItem {
		sort.Strings(barcodes)
	}

	return idx
}

// Lookup returns the index entry for an exact canonical id.
func (idx *Index) Lookup(itemID string) (IndexEntry, bool) {
	entry, ok := idx.exact[itemID]
	return entry, ok
}

// LookupBarcode returns the index entry keyed by a raw barcode.
func (idx *Index) LookupBarcode(barcode string) (IndexEntry, bool) {
	entry, ok := idx.barcodes[barcode]
	return entry, ok
}

// Barcodes returns the sorted barcodes mapped to the given canonical id.
func (idx *Index) Barcodes(itemID string) []string {
	return idx.barcodesByItem[itemID]
}

// ItemIDs returns all canonical ids in sorted order.
func (idx *Index) ItemIDs() []string {
	return idx.sortedIDs
}

// Len returns the number of distinct canonical ids in the index.
func (idx *Index) Len() int {
	return len(idx.exact)
}
