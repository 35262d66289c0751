package model

import (
	"encoding/json"
	"fmt"
)

// BarcodeEntry is the value side of a barcode mapping entry. Several barcodes
// may point to the same item id; barcodes themselves are unique keys.
type BarcodeEntry struct {
	ItemID      string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
}

// BarcodeMapping maps a scanned barcode string to its catalog entry.
type BarcodeMapping map[string]BarcodeEntry

// UnmarshalJSON accepts both catalog formats: the legacy one where the value
// is a bare item id string, and the current one where it is an object with
// id/description/weight.
func (m *BarcodeMapping) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("barcode mapping must be a JSON object: %w", err)
	}

	out := make(BarcodeMapping, len(raw))
	for barcode, value := range raw {
		var id string
		if err := json.Unmarshal(value, &id); err == nil {
			out[barcode] = BarcodeEntry{ItemID: id}
			continue
		}

		var entry BarcodeEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return fmt.Errorf("invalid catalog entry for barcode %q: %w", barcode, err)
		}
		if entry.ItemID == "" {
			return fmt.Errorf("catalog entry for barcode %q has no item id", barcode)
		}
		out[barcode] = entry
	}

	*m = out
	return nil
}
