package warehouse

import (
	"log/slog"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// Correction records one invariant repair applied before serialization.
type Correction struct {
	Workflow     model.Workflow `json:"workflow"`
	ItemID       string         `json:"itemId"`
	Field        string         `json:"field"`
	Before       int            `json:"before"`
	After        int            `json:"after"`
	CompletedWas bool           `json:"completedWas"`
	CompletedNow bool           `json:"completedNow"`
}

// ReconcileList repairs count/flag drift on a single list: a ScannedCount
// above Quantity is clamped down, negative counts are floored at zero, and
// Completed is recomputed as ScannedCount >= Quantity. Idempotent, and a
// valid count is never decreased. Every repair is reported; drift means an
// earlier bug or a partial write and must not vanish silently.
func ReconcileList(workflow model.Workflow, list model.List) []Correction {
	var corrections []Correction
	for _, item := range list {
		before := item.ScannedCount
		completedWas := item.Completed

		if item.ScannedCount > item.Quantity {
			item.ScannedCount = item.Quantity
		}
		if item.ScannedCount < 0 {
			item.ScannedCount = 0
		}

		shouldBeComplete := item.ScannedCount >= item.Quantity
		if item.Completed != shouldBeComplete {
			item.Completed = shouldBeComplete
			if !shouldBeComplete {
				item.CompletedAt = nil
			}
		}

		if before != item.ScannedCount || completedWas != item.Completed {
			corrections = append(corrections, Correction{
				Workflow:     workflow,
				ItemID:       item.ID,
				Field:        "scannedCount",
				Before:       before,
				After:        item.ScannedCount,
				CompletedWas: completedWas,
				CompletedNow: item.Completed,
			})
		}
	}
	return corrections
}

// ReconcileSession runs the repair pass over all three workflow lists and
// logs every correction. Called before any session snapshot is saved.
func ReconcileSession(session *model.Session) []Correction {
	if session == nil {
		return nil
	}

	var corrections []Correction
	corrections = append(corrections, ReconcileList(model.WorkflowPicking, session.PickList)...)
	corrections = append(corrections, ReconcileList(model.WorkflowReceiving, session.ReceiveList)...)
	corrections = append(corrections, ReconcileList(model.WorkflowReturns, session.ReturnList)...)

	for _, c := range corrections {
		slog.Warn("repaired scan count drift before save",
			"workflow", c.Workflow,
			"item_id", c.ItemID,
			"count_before", c.Before,
			"count_after", c.After,
			"completed_before", c.CompletedWas,
			"completed_after", c.CompletedNow,
		)
	}

	return corrections
}
