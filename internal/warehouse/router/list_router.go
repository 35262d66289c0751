package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wareline/wareline/internal/exports"
	"github.com/wareline/wareline/internal/listio"
	"github.com/wareline/wareline/internal/scan"
	"github.com/wareline/wareline/internal/warehouse/model"
	"github.com/wareline/wareline/internal/warehouse/service"
	"github.com/wareline/wareline/utils"
)

type ListRouter struct {
	ss *service.SessionService
	es *exports.ExportService
}

func NewListRouter(ss *service.SessionService, es *exports.ExportService) *ListRouter {
	return &ListRouter{ss: ss, es: es}
}

type listResponse struct {
	Workflow model.Workflow `json:"workflow"`
	Items    model.List     `json:"items"`
	Stats    scan.ListStats `json:"stats"`
	Total    int            `json:"total"`
}

// HandleGetList handles GET /api/lists/{workflow}
// Optional query filters: offset, limit
// Response: listResponse with the page of items and whole-list stats
func (lr *ListRouter) HandleGetList(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.PathValue("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var offset, limit *int
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		value, err := strconv.Atoi(offsetStr)
		if err != nil {
			http.Error(w, "invalid 'offset' query parameter, must be an integer", http.StatusBadRequest)
			return
		}
		offset = &value
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		value, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid 'limit' query parameter, must be an integer", http.StatusBadRequest)
			return
		}
		limit = &value
	}

	items, stats := lr.ss.ListSnapshot(workflow)
	total := len(items)

	start, size := utils.GetPaginationParams(offset, limit)
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listResponse{
		Workflow: workflow,
		Items:    page,
		Stats:    stats,
		Total:    total,
	}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleImportList handles POST /api/lists/{workflow}/import?format={csv|json}
// The request body is the raw file content. The imported list replaces the
// workflow list and resets its progress.
func (lr *ListRouter) HandleImportList(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.PathValue("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	defaultWeight := lr.ss.Settings().DefaultItemWeight

	format := strings.ToLower(r.URL.Query().Get("format"))
	var items model.List
	switch format {
	case "", "csv", "txt":
		items, err = listio.ParseListCSV(r.Body, defaultWeight)
	case "json":
		body, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		items, err = listio.ParseListJSON(body, defaultWeight)
	default:
		http.Error(w, fmt.Sprintf("unsupported import format %q", format), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to parse list: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(items) == 0 {
		http.Error(w, "no items found in the uploaded list", http.StatusBadRequest)
		return
	}

	if err := lr.ss.ReplaceList(r.Context(), workflow, items); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]int{"imported": len(items)}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleClearList handles DELETE /api/lists/{workflow}
func (lr *ListRouter) HandleClearList(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.PathValue("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := lr.ss.ClearList(r.Context(), workflow); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExportList handles POST /api/lists/{workflow}/export?format={json|csv|txt}
// Response: exports.ExportRecord with the download URL of the artifact
func (lr *ListRouter) HandleExportList(w http.ResponseWriter, r *http.Request) {
	workflow, err := parseWorkflow(r.PathValue("workflow"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := exports.Format(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = exports.FormatJSON
	}

	items, _ := lr.ss.ListSnapshot(workflow)
	if len(items) == 0 {
		http.Error(w, "nothing to export", http.StatusBadRequest)
		return
	}

	record, err := lr.es.Generate(r.Context(), workflow, format, items)
	if err != nil {
		http.Error(w, "failed to generate export: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleDownloadExport handles GET /api/exports/{key}
func (lr *ListRouter) HandleDownloadExport(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "export key is required", http.StatusBadRequest)
		return
	}

	reader, contentType, err := lr.es.Download(r.Context(), key)
	if err != nil {
		http.Error(w, "export not found", http.StatusNotFound)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, reader)
}
