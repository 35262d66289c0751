package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/wareline/wareline/internal/catalog"
	"github.com/wareline/wareline/internal/operator"
	"github.com/wareline/wareline/internal/scan"
	"github.com/wareline/wareline/internal/search"
	"github.com/wareline/wareline/internal/warehouse"
	"github.com/wareline/wareline/internal/warehouse/model"
)

// ScanOutcome is what a raw scanner token produced end to end: resolution,
// state machine result and refreshed list statistics.
type ScanOutcome struct {
	RawToken string         `json:"rawToken"`
	ItemID   string         `json:"itemId,omitempty"`
	Resolved bool           `json:"resolved"`
	Result   *scan.Result   `json:"result,omitempty"`
	Stats    scan.ListStats `json:"stats"`
	Message  string         `json:"message"`
}

// SessionService owns the single scanning session and serializes all access
// to it. The core packages are pure transformations; this layer strings them
// together (resolve, apply, reconcile, save) and talks to the injected
// persistence collaborator. The mutex is the per-list serialization the
// single-writer model requires once the HTTP server introduces parallelism.
type SessionService struct {
	mu sync.Mutex

	session  *model.Session
	store    warehouse.Store
	storeKey string

	machine *scan.StateMachine
	engine  *search.Engine
	journal *warehouse.ScanJournal

	prefixes []string
	resolver *catalog.Resolver
	index    *catalog.Index
	dirty    bool
}

// NewSessionService loads the session snapshot under key, or starts an empty
// session when none exists. journal may be nil.
func NewSessionService(ctx context.Context, store warehouse.Store, key string, prefixes []string, journal *warehouse.ScanJournal) (*SessionService, error) {
	if store == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}

	session, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, warehouse.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("failed to load session %q: %w", key, err)
		}
		slog.Info("no session snapshot found, starting empty", "key", key)
		session = model.NewSession()
	} else {
		// Repair any drift the snapshot carried in.
		warehouse.ReconcileSession(session)
		slog.Info("session snapshot loaded",
			"key", key,
			"pick_items", len(session.PickList),
			"receive_items", len(session.ReceiveList),
			"return_items", len(session.ReturnList),
			"catalog_entries", len(session.BarcodeMapping),
		)
	}

	s := &SessionService{
		session:  session,
		store:    store,
		storeKey: key,
		machine:  scan.NewStateMachine(),
		engine:   search.NewEngine(),
		journal:  journal,
		prefixes: prefixes,
		dirty:    true,
	}
	return s, nil
}

// rebuildIndex rebuilds the catalog index and resolver when the mapping has
// changed since the last resolution. Callers hold s.mu.
func (s *SessionService) rebuildIndex() {
	if !s.dirty && s.index != nil {
		return
	}
	s.index = catalog.NewIndex(s.session.BarcodeMapping)
	s.resolver = catalog.NewResolverWithPrefixes(s.index, s.prefixes)
	s.dirty = false
}

// Scan resolves rawToken and applies it to the workflow's list. quantity must
// be 1 except on returns, where bulk entries are accepted and clamped.
//
// An unresolvable token or a structured state machine failure comes back in
// the ScanOutcome; only malformed input and storage failures are errors.
func (s *SessionService) Scan(ctx context.Context, workflow model.Workflow, rawToken string, quantity int) (*ScanOutcome, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, fmt.Errorf("%w: empty scan token", scan.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !workflow.Valid() {
		return nil, fmt.Errorf("%w: unknown workflow %q", scan.ErrInvalidInput, workflow)
	}

	s.rebuildIndex()

	outcome := &ScanOutcome{RawToken: token}

	itemID, ok := s.resolver.Resolve(token)
	if !ok {
		// Unresolved tokens are an expected outcome; the operator decides
		// what to do. Never silently create an item for one.
		outcome.Message = fmt.Sprintf("barcode %q does not match any known item", token)
		outcome.Stats = scan.ComputeStats(*s.session.ListFor(workflow))
		s.journalEvent(ctx, warehouse.ScanEventRecord{
			Workflow:  workflow,
			RawToken:  token,
			Requested: quantity,
		})
		return outcome, nil
	}
	outcome.ItemID = itemID
	outcome.Resolved = true

	result, err := s.machine.ApplyScan(s.session, workflow, itemID, quantity)
	if err != nil {
		return nil, err
	}
	outcome.Result = result
	outcome.Message = result.Message
	outcome.Stats = scan.ComputeStats(*s.session.ListFor(workflow))

	s.journalEvent(ctx, warehouse.ScanEventRecord{
		Workflow:  workflow,
		ItemID:    itemID,
		RawToken:  token,
		Requested: result.RequestedQuantity,
		Applied:   result.AppliedQuantity,
		Success:   result.Success,
		Reason:    string(result.Reason),
	})

	if result.Success {
		if err := s.saveLocked(ctx); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

// Undo reverses the most recent scan on the workflow. Returns false when
// there was nothing to undo.
func (s *SessionService) Undo(ctx context.Context, workflow model.Workflow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker := s.session.MarkerFor(workflow)
	undone, err := s.machine.UndoLastScan(s.session, workflow)
	if err != nil {
		return false, err
	}
	if !undone {
		return false, nil
	}

	s.journalEvent(ctx, warehouse.ScanEventRecord{
		Workflow: workflow,
		ItemID:   marker.ItemID,
		Applied:  -1,
		Success:  true,
		Undo:     true,
	})

	if err := s.saveLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Search ranks the union of all lists and the catalog against query.
// current selects whose list membership sorts first.
func (s *SessionService) Search(query string, current model.Workflow) []search.RankedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := search.BuildCandidates(s.session)
	return s.engine.Search(query, candidates, func(id string) bool {
		return s.session.Membership(id)[current]
	})
}

// ReplaceList swaps in a newly imported workflow list and clears the
// workflow's undo marker.
func (s *SessionService) ReplaceList(ctx context.Context, workflow model.Workflow, items model.List) error {
	if !workflow.Valid() {
		return fmt.Errorf("%w: unknown workflow %q", scan.ErrInvalidInput, workflow)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	*s.session.ListFor(workflow) = items
	s.session.SetMarker(workflow, nil)
	return s.saveLocked(ctx)
}

// ClearList empties the workflow list and its undo marker.
func (s *SessionService) ClearList(ctx context.Context, workflow model.Workflow) error {
	return s.ReplaceList(ctx, workflow, nil)
}

// ListSnapshot returns a copy of the workflow list plus its statistics.
func (s *SessionService) ListSnapshot(workflow model.Workflow) (model.List, scan.ListStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := *s.session.ListFor(workflow)
	snapshot := make(model.List, len(list))
	for i, item := range list {
		copied := *item
		snapshot[i] = &copied
	}
	return snapshot, scan.ComputeStats(list)
}

// ReplaceCatalog swaps the barcode mapping (merge=false) or merges new
// entries over existing ones (merge=true) and invalidates the derived index.
func (s *SessionService) ReplaceCatalog(ctx context.Context, mapping model.BarcodeMapping, merge bool) error {
	if mapping == nil {
		return fmt.Errorf("%w: catalog mapping cannot be nil", scan.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if merge {
		for barcode, entry := range mapping {
			s.session.BarcodeMapping[barcode] = entry
		}
	} else {
		s.session.BarcodeMapping = mapping
	}
	s.dirty = true
	return s.saveLocked(ctx)
}

// RegisterReturn is the returns-intake list edit: it resolves token if it
// can, falls back to the token itself as the item id, and appends to (or
// extends) the (id, condition) row on the return list. Unlike Scan this may
// create a record, because building the return list is exactly what intake
// does.
func (s *SessionService) RegisterReturn(ctx context.Context, rawToken string, quantity int, condition string) (*model.Item, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, fmt.Errorf("%w: empty return token", scan.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity %d", scan.ErrInvalidInput, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildIndex()

	if condition == "" {
		condition = s.session.Settings.DefaultCondition
	}

	itemID := token
	description := ""
	weight := s.session.Settings.DefaultItemWeight
	if resolved, ok := s.resolver.Resolve(token); ok {
		itemID = resolved
		if entry, found := s.index.Lookup(resolved); found {
			description = entry.Description
			if entry.Weight != nil {
				weight = *entry.Weight
			}
		}
	}

	item := s.session.ReturnList.FindWithCondition(itemID, condition)
	if item != nil {
		item.Quantity += quantity
		item.Completed = item.ScannedCount >= item.Quantity
		if !item.Completed {
			item.CompletedAt = nil
		}
	} else {
		item = &model.Item{
			ID:          itemID,
			Description: description,
			Quantity:    quantity,
			Weight:      weight,
			Condition:   condition,
		}
		s.session.ReturnList = append(s.session.ReturnList, item)
	}

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	copied := *item
	return &copied, nil
}

// SetItemWeight updates the weight on every list record of the item and, when
// the catalog has an entry for it, on the catalog entries as well.
func (s *SessionService) SetItemWeight(ctx context.Context, itemID string, weight float64) error {
	if itemID == "" {
		return fmt.Errorf("%w: empty item id", scan.ErrInvalidInput)
	}
	if weight < 0 {
		return fmt.Errorf("%w: negative weight", scan.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range []model.List{s.session.PickList, s.session.ReceiveList, s.session.ReturnList} {
		for _, item := range list {
			if item.ID == itemID {
				item.Weight = weight
			}
		}
	}
	for barcode, entry := range s.session.BarcodeMapping {
		if entry.ItemID == itemID {
			w := weight
			entry.Weight = &w
			s.session.BarcodeMapping[barcode] = entry
		}
	}
	s.dirty = true
	return s.saveLocked(ctx)
}

// Settings returns a copy of the session settings.
func (s *SessionService) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Settings
}

// UpdateSettings replaces the session settings.
func (s *SessionService) UpdateSettings(ctx context.Context, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Settings = settings
	return s.saveLocked(ctx)
}

// RecentEvents exposes the scan journal for a workflow.
func (s *SessionService) RecentEvents(ctx context.Context, workflow model.Workflow, limit int) ([]warehouse.ScanEventRecord, error) {
	return s.journal.Recent(ctx, workflow, limit)
}

// saveLocked reconciles and persists the session. Callers hold s.mu.
// Storage failures are surfaced to the caller, never swallowed.
func (s *SessionService) saveLocked(ctx context.Context) error {
	warehouse.ReconcileSession(s.session)
	if err := s.store.Save(ctx, s.storeKey, s.session); err != nil {
		return fmt.Errorf("failed to save session %q: %w", s.storeKey, err)
	}
	return nil
}

func (s *SessionService) journalEvent(ctx context.Context, event warehouse.ScanEventRecord) {
	event.Operator = operator.ID(ctx)
	if err := s.journal.Record(ctx, event); err != nil {
		// Journaling must not block scanning; log and continue.
		slog.Error("failed to journal scan event", "error", err)
	}
}
