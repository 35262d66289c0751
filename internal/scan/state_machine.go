package scan

import (
	"errors"
	"fmt"
	"time"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// ErrInvalidInput reports a malformed call (empty item id, non-positive or
// unsupported quantity). Unlike the structured failures in Result this is a
// programmer error and surfaces as a real error.
var ErrInvalidInput = errors.New("invalid scan input")

// FailureReason classifies the expected, operator-facing scan failures.
type FailureReason string

const (
	FailureNone            FailureReason = ""
	FailureItemNotFound    FailureReason = "ITEM_NOT_FOUND"
	FailureAlreadyComplete FailureReason = "ALREADY_COMPLETE"
)

// Result is the outcome of applying one resolved scan to a workflow list.
// AppliedQuantity can differ from RequestedQuantity on the returns list,
// where bulk entries are clamped to the remaining room.
type Result struct {
	Success           bool          `json:"success"`
	Reason            FailureReason `json:"reason,omitempty"`
	ItemID            string        `json:"itemId"`
	RequestedQuantity int           `json:"requestedQuantity"`
	AppliedQuantity   int           `json:"appliedQuantity"`
	RemainingCount    int           `json:"remainingCount"`
	IsComplete        bool          `json:"isComplete"`
	Message           string        `json:"message"`
}

// StateMachine applies resolved scans to workflow lists and enforces the
// count invariants: 0 <= ScannedCount <= Quantity and
// Completed == (ScannedCount >= Quantity). Items move Pending -> Partial ->
// Complete; a Complete item rejects further scans but remains undo-reversible.
//
// Picking and receiving are strict one-unit-per-scan counters: every physical
// scan accounts for exactly one handled unit, and over-scanning is surfaced
// immediately because it indicates an operator error. Returns accept batched
// quantities (whole-carton intake) and clamp instead of rejecting.
type StateMachine struct {
	now func() time.Time
}

// NewStateMachine creates a state machine using the wall clock.
func NewStateMachine() *StateMachine {
	return &StateMachine{now: time.Now}
}

// NewStateMachineWithClock creates a state machine with an injected clock,
// for tests.
func NewStateMachineWithClock(now func() time.Time) *StateMachine {
	return &StateMachine{now: now}
}

// ApplyScan applies a resolved scan of itemID to the session's list for the
// given workflow. requested must be exactly 1 for picking and receiving; the
// returns list accepts any positive quantity and applies
// min(requested, remaining).
//
// Expected conditions (unknown item, already complete) come back as a
// structured Result with Success=false, never as an error; the caller maps
// them to operator feedback. ErrInvalidInput is returned for malformed calls.
func (sm *StateMachine) ApplyScan(session *model.Session, workflow model.Workflow, itemID string, requested int) (*Result, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session cannot be nil", ErrInvalidInput)
	}
	if !workflow.Valid() {
		return nil, fmt.Errorf("%w: unknown workflow %q", ErrInvalidInput, workflow)
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: empty item id", ErrInvalidInput)
	}
	if requested < 1 {
		return nil, fmt.Errorf("%w: quantity %d", ErrInvalidInput, requested)
	}
	if workflow != model.WorkflowReturns && requested != 1 {
		return nil, fmt.Errorf("%w: %s scans apply exactly one unit, got %d", ErrInvalidInput, workflow, requested)
	}

	list := *session.ListFor(workflow)
	item := list.Find(itemID)
	if item == nil {
		return &Result{
			Reason:            FailureItemNotFound,
			ItemID:            itemID,
			RequestedQuantity: requested,
			Message:           fmt.Sprintf("item %q is not on the %s list", itemID, workflowLabel(workflow)),
		}, nil
	}

	remaining := item.Remaining()
	if remaining == 0 {
		return &Result{
			Reason:            FailureAlreadyComplete,
			ItemID:            itemID,
			RequestedQuantity: requested,
			RemainingCount:    0,
			IsComplete:        true,
			Message:           fmt.Sprintf("all %d units of %q are already scanned", item.Quantity, itemID),
		}, nil
	}

	applied := requested
	if workflow == model.WorkflowReturns && applied > remaining {
		applied = remaining
	}

	item.ScannedCount += applied
	if item.ScannedCount >= item.Quantity {
		item.Completed = true
		completedAt := sm.now()
		item.CompletedAt = &completedAt
	}

	session.SetMarker(workflow, &model.LastScanMarker{
		ItemID:    itemID,
		Timestamp: sm.now(),
	})

	result := &Result{
		Success:           true,
		ItemID:            itemID,
		RequestedQuantity: requested,
		AppliedQuantity:   applied,
		RemainingCount:    item.Remaining(),
		IsComplete:        item.Completed,
	}
	if result.IsComplete {
		result.Message = fmt.Sprintf("item %q fully scanned", itemID)
	} else {
		result.Message = fmt.Sprintf("item %q registered, %d of %d remaining", itemID, result.RemainingCount, item.Quantity)
	}
	return result, nil
}

// UndoLastScan reverses the single most recent scan on the workflow by
// decrementing the marked item's count by one unit (floor zero), clearing the
// completion stamp when the count drops below quantity, and clearing the
// marker. Calling it without a marker set is a no-op, not an error; there is
// no multi-level undo stack.
func (sm *StateMachine) UndoLastScan(session *model.Session, workflow model.Workflow) (bool, error) {
	if session == nil {
		return false, fmt.Errorf("%w: session cannot be nil", ErrInvalidInput)
	}
	if !workflow.Valid() {
		return false, fmt.Errorf("%w: unknown workflow %q", ErrInvalidInput, workflow)
	}

	marker := session.MarkerFor(workflow)
	if marker == nil {
		return false, nil
	}

	list := *session.ListFor(workflow)
	if item := list.Find(marker.ItemID); item != nil {
		if item.ScannedCount > 0 {
			item.ScannedCount--
		}
		if item.ScannedCount < item.Quantity {
			item.Completed = false
			item.CompletedAt = nil
		}
	}

	session.SetMarker(workflow, nil)
	return true, nil
}

func workflowLabel(workflow model.Workflow) string {
	switch workflow {
	case model.WorkflowPicking:
		return "pick"
	case model.WorkflowReceiving:
		return "receive"
	case model.WorkflowReturns:
		return "return"
	}
	return string(workflow)
}
