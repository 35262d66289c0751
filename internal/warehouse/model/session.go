package model

// Settings holds operator-tunable defaults carried with the session.
type Settings struct {
	WeightUnit        string  `json:"weightUnit"`
	DefaultItemWeight float64 `json:"defaultItemWeight"`
	DefaultCondition  string  `json:"defaultCondition"`
}

// DefaultSettings returns the settings applied to a fresh session.
func DefaultSettings() Settings {
	return Settings{
		WeightUnit:        "kg",
		DefaultItemWeight: 1.0,
		DefaultCondition:  "unopened",
	}
}

// Session is the whole mutable state of one scanning session: the three
// workflow lists, the barcode catalog and the per-workflow undo markers.
// It is owned by a single logical thread of control; the core packages only
// read and mutate records reached through it.
type Session struct {
	PickList    List `json:"pickList"`
	ReceiveList List `json:"receiveList"`
	ReturnList  List `json:"returnList"`

	BarcodeMapping BarcodeMapping `json:"barcodeMapping"`

	LastScans map[Workflow]*LastScanMarker `json:"lastScans"`

	Settings Settings `json:"settings"`
}

// NewSession returns an empty session with default settings.
func NewSession() *Session {
	return &Session{
		BarcodeMapping: make(BarcodeMapping),
		LastScans:      make(map[Workflow]*LastScanMarker),
		Settings:       DefaultSettings(),
	}
}

// ListFor returns a handle to the list for the given workflow. The pointer
// allows the state machine to append (returns) and the caller to replace on
// import.
func (s *Session) ListFor(workflow Workflow) *List {
	switch workflow {
	case WorkflowPicking:
		return &s.PickList
	case WorkflowReceiving:
		return &s.ReceiveList
	case WorkflowReturns:
		return &s.ReturnList
	}
	return nil
}

// MarkerFor returns the last-scan marker for the workflow, or nil.
func (s *Session) MarkerFor(workflow Workflow) *LastScanMarker {
	if s.LastScans == nil {
		return nil
	}
	return s.LastScans[workflow]
}

// SetMarker records the last-scan marker for the workflow; nil clears it.
func (s *Session) SetMarker(workflow Workflow, marker *LastScanMarker) {
	if s.LastScans == nil {
		s.LastScans = make(map[Workflow]*LastScanMarker)
	}
	if marker == nil {
		delete(s.LastScans, workflow)
		return
	}
	s.LastScans[workflow] = marker
}

// Membership reports which lists contain the given item id.
func (s *Session) Membership(itemID string) map[Workflow]bool {
	return map[Workflow]bool{
		WorkflowPicking:   s.PickList.Find(itemID) != nil,
		WorkflowReceiving: s.ReceiveList.Find(itemID) != nil,
		WorkflowReturns:   s.ReturnList.Find(itemID) != nil,
	}
}
