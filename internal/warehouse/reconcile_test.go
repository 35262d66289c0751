package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wareline/wareline/internal/warehouse/model"
)

func TestReconcileList(t *testing.T) {
	t.Run("Clamps Count Above Quantity", func(t *testing.T) {
		list := model.List{
			{ID: "ABC-100", Quantity: 3, ScannedCount: 7},
		}

		corrections := ReconcileList(model.WorkflowPicking, list)
		assert.Len(t, corrections, 1)
		assert.Equal(t, 7, corrections[0].Before)
		assert.Equal(t, 3, corrections[0].After)
		assert.Equal(t, 3, list[0].ScannedCount)
		assert.True(t, list[0].Completed)
	})

	t.Run("Floors Negative Count At Zero", func(t *testing.T) {
		list := model.List{
			{ID: "ABC-100", Quantity: 2, ScannedCount: -1},
		}

		corrections := ReconcileList(model.WorkflowReceiving, list)
		assert.Len(t, corrections, 1)
		assert.Equal(t, 0, list[0].ScannedCount)
		assert.False(t, list[0].Completed)
	})

	t.Run("Recomputes Stale Completed Flag", func(t *testing.T) {
		completedAt := time.Now()
		list := model.List{
			{ID: "ABC-100", Quantity: 3, ScannedCount: 3, Completed: false},
			{ID: "XYZ-200", Quantity: 3, ScannedCount: 1, Completed: true, CompletedAt: &completedAt},
		}

		corrections := ReconcileList(model.WorkflowPicking, list)
		assert.Len(t, corrections, 2)
		assert.True(t, list[0].Completed)
		assert.False(t, list[1].Completed)
		assert.Nil(t, list[1].CompletedAt)
	})

	t.Run("Valid Items Pass Untouched", func(t *testing.T) {
		list := model.List{
			{ID: "ABC-100", Quantity: 3, ScannedCount: 2},
			{ID: "XYZ-200", Quantity: 1, ScannedCount: 1, Completed: true},
		}

		assert.Empty(t, ReconcileList(model.WorkflowPicking, list))
		assert.Equal(t, 2, list[0].ScannedCount)
		assert.Equal(t, 1, list[1].ScannedCount)
	})

	t.Run("Is Idempotent", func(t *testing.T) {
		list := model.List{
			{ID: "ABC-100", Quantity: 3, ScannedCount: 9},
		}

		assert.NotEmpty(t, ReconcileList(model.WorkflowPicking, list))
		assert.Empty(t, ReconcileList(model.WorkflowPicking, list))
	})
}

func TestReconcileSession(t *testing.T) {
	t.Run("Covers All Three Lists", func(t *testing.T) {
		session := model.NewSession()
		session.PickList = model.List{{ID: "A-1", Quantity: 1, ScannedCount: 2}}
		session.ReceiveList = model.List{{ID: "B-2", Quantity: 1, ScannedCount: -3}}
		session.ReturnList = model.List{{ID: "C-3", Quantity: 2, ScannedCount: 2, Completed: false}}

		corrections := ReconcileSession(session)
		assert.Len(t, corrections, 3)

		workflows := make(map[model.Workflow]bool)
		for _, c := range corrections {
			workflows[c.Workflow] = true
		}
		assert.True(t, workflows[model.WorkflowPicking])
		assert.True(t, workflows[model.WorkflowReceiving])
		assert.True(t, workflows[model.WorkflowReturns])
	})

	t.Run("Nil Session Is A No Op", func(t *testing.T) {
		assert.Nil(t, ReconcileSession(nil))
	})
}
