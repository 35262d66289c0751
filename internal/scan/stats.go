package scan

import (
	"github.com/wareline/wareline/internal/warehouse/model"
)

// ListStats summarizes scan progress and weight totals for one workflow list.
// Weights count actually scanned units, matching what has physically moved.
type ListStats struct {
	TotalItems      int     `json:"totalItems"`
	CompletedItems  int     `json:"completedItems"`
	ScannedUnits    int     `json:"scannedUnits"`
	RequiredUnits   int     `json:"requiredUnits"`
	PercentComplete int     `json:"percentComplete"`
	ScannedWeight   float64 `json:"scannedWeight"`
	TotalWeight     float64 `json:"totalWeight"`
}

// ComputeStats walks the list once and returns its progress totals.
func ComputeStats(list model.List) ListStats {
	var stats ListStats
	for _, item := range list {
		stats.TotalItems++
		if item.Completed {
			stats.CompletedItems++
		}
		stats.ScannedUnits += item.ScannedCount
		stats.RequiredUnits += item.Quantity
		stats.ScannedWeight += float64(item.ScannedCount) * item.Weight
		stats.TotalWeight += float64(item.Quantity) * item.Weight
	}
	if stats.RequiredUnits > 0 {
		stats.PercentComplete = stats.ScannedUnits * 100 / stats.RequiredUnits
	}
	return stats
}
