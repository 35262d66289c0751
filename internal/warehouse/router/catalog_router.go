package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/wareline/wareline/internal/listio"
	"github.com/wareline/wareline/internal/warehouse/model"
	"github.com/wareline/wareline/internal/warehouse/service"
)

type CatalogRouter struct {
	ss *service.SessionService
}

func NewCatalogRouter(ss *service.SessionService) *CatalogRouter {
	return &CatalogRouter{ss: ss}
}

type returnRequest struct {
	Token     string `json:"token"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
}

type weightRequest struct {
	Weight float64 `json:"weight"`
}

// HandleUploadCatalog handles POST /api/catalog?merge={true|false}
// The request body is the barcode catalog JSON. merge=true layers the new
// entries over the existing mapping instead of replacing it.
func (cr *CatalogRouter) HandleUploadCatalog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	mapping, err := listio.ParseCatalogJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	merge := r.URL.Query().Get("merge") == "true"
	if err := cr.ss.ReplaceCatalog(r.Context(), mapping, merge); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]int{"entries": len(mapping)}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleRegisterReturn handles POST /api/returns
// Request body: returnRequest
// Response: the created or extended return list item
func (cr *CatalogRouter) HandleRegisterReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := cr.ss.RegisterReturn(r.Context(), req.Token, req.Quantity, req.Condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleSetItemWeight handles PUT /api/items/{id}/weight
// Request body: weightRequest
func (cr *CatalogRouter) HandleSetItemWeight(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "item ID is required", http.StatusBadRequest)
		return
	}

	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := cr.ss.SetItemWeight(r.Context(), itemID, req.Weight); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetSettings handles GET /api/settings
func (cr *CatalogRouter) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(cr.ss.Settings()); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleUpdateSettings handles PUT /api/settings
// Request body: model.Settings
func (cr *CatalogRouter) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	defaults := model.DefaultSettings()
	if settings.WeightUnit == "" {
		settings.WeightUnit = defaults.WeightUnit
	}
	if settings.DefaultItemWeight <= 0 {
		settings.DefaultItemWeight = defaults.DefaultItemWeight
	}
	if settings.DefaultCondition == "" {
		settings.DefaultCondition = defaults.DefaultCondition
	}

	if err := cr.ss.UpdateSettings(r.Context(), settings); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(settings); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}
