package model

import (
	"time"
)

// Workflow identifies one of the three scanning workflows.
type Workflow string

const (
	WorkflowPicking   Workflow = "PICKING"
	WorkflowReceiving Workflow = "RECEIVING"
	WorkflowReturns   Workflow = "RETURNS"
)

// Valid reports whether w is one of the known workflows.
func (w Workflow) Valid() bool {
	switch w {
	case WorkflowPicking, WorkflowReceiving, WorkflowReturns:
		return true
	}
	return false
}

// ItemState represents the scan progress of a single line-item.
type ItemState string

const (
	ItemStatePending  ItemState = "PENDING"
	ItemStatePartial  ItemState = "PARTIAL"
	ItemStateComplete ItemState = "COMPLETE"
)

// Item is a single line-item on a workflow list.
// Invariant: 0 <= ScannedCount <= Quantity and Completed == (ScannedCount >= Quantity).
type Item struct {
	ID           string     `json:"id"`
	Description  string     `json:"description,omitempty"`
	Quantity     int        `json:"quantity"`
	Weight       float64    `json:"weight"`
	ScannedCount int        `json:"scannedCount"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`

	// Condition is only meaningful on the returns list ("unopened", "damaged", ...).
	Condition string `json:"condition,omitempty"`
}

// State derives the scan state from the counters.
func (it *Item) State() ItemState {
	switch {
	case it.ScannedCount <= 0:
		return ItemStatePending
	case it.ScannedCount < it.Quantity:
		return ItemStatePartial
	default:
		return ItemStateComplete
	}
}

// Remaining returns the number of units still to be scanned (never negative).
func (it *Item) Remaining() int {
	remaining := it.Quantity - it.ScannedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// List is an ordered workflow list. Order is import order and carries no
// semantic meaning; one record exists per distinct item id (returns may hold
// one record per (id, condition) pair).
type List []*Item

// Find returns the first item with the given id, or nil.
func (l List) Find(itemID string) *Item {
	for _, it := range l {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// FindWithCondition returns the item with the given id and condition, or nil.
func (l List) FindWithCondition(itemID, condition string) *Item {
	for _, it := range l {
		if it.ID == itemID && it.Condition == condition {
			return it
		}
	}
	return nil
}

// LastScanMarker remembers the single most recent successful scan on a
// workflow list, to support one-step undo. Overwritten on every successful
// scan, cleared on undo.
type LastScanMarker struct {
	ItemID    string    `json:"itemId"`
	Timestamp time.Time `json:"timestamp"`
}
