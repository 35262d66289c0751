package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/wareline/wareline/internal/scan"
	"github.com/wareline/wareline/internal/warehouse/model"
	"github.com/wareline/wareline/internal/warehouse/service"
	"github.com/wareline/wareline/utils"
)

type ScanRouter struct {
	ss *service.SessionService
}

func NewScanRouter(ss *service.SessionService) *ScanRouter {
	return &ScanRouter{ss: ss}
}

type scanRequest struct {
	Workflow string `json:"workflow"`
	Token    string `json:"token"`
	Quantity int    `json:"quantity"`
}

type undoRequest struct {
	Workflow string `json:"workflow"`
}

type undoResponse struct {
	Undone bool `json:"undone"`
}

// parseWorkflow accepts the workflow name case-insensitively.
func parseWorkflow(raw string) (model.Workflow, error) {
	workflow := model.Workflow(strings.ToUpper(strings.TrimSpace(raw)))
	if !workflow.Valid() {
		return "", fmt.Errorf("unknown workflow %q", raw)
	}
	return workflow, nil
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, scan.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// HandleScan handles POST /api/scans
// Request body: scanRequest
// Response: service.ScanOutcome
func (sr *ScanRouter) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	workflow, err := parseWorkflow(req.Workflow)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	outcome, err := sr.ss.Scan(r.Context(), workflow, req.Token, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleUndo handles POST /api/scans/undo
// Request body: undoRequest
// Response: undoResponse
func (sr *ScanRouter) HandleUndo(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	workflow, err := parseWorkflow(req.Workflow)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	undone, err := sr.ss.Undo(r.Context(), workflow)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(undoResponse{Undone: undone}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleSearch handles GET /api/search?q={query}&workflow={workflow}
// Response: array of search.RankedItem
func (sr *ScanRouter) HandleSearch(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.URL.Query().Get("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results := sr.ss.Search(r.URL.Query().Get("q"), workflow)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleGetEvents handles GET /api/events?workflow={workflow}&limit={limit}
// Response: array of warehouse.ScanEventRecord
func (sr *ScanRouter) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.URL.Query().Get("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var limitParam *int
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid 'limit' query parameter, must be an integer", http.StatusBadRequest)
			return
		}
		limitParam = &parsed
	}
	// Non-positive or oversized limits fall back to the paging defaults so
	// they cannot reach the store as an unbounded query.
	_, limit := utils.GetPaginationParams(nil, limitParam)

	events, err := sr.ss.RecentEvents(r.Context(), workflow, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to get scan events: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(events); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}
