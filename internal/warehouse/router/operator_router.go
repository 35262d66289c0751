package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/wareline/wareline/internal/operator"
)

type OperatorRouter struct {
	os *operator.Service
}

func NewOperatorRouter(os *operator.Service) *OperatorRouter {
	return &OperatorRouter{os: os}
}

type operatorRequest struct {
	DisplayName string          `json:"displayName"`
	Preferences json.RawMessage `json:"preferences"`
}

// HandleGetOperator handles GET /api/operators/{id}
// Response: operator.Profile
func (or *OperatorRouter) HandleGetOperator(w http.ResponseWriter, r *http.Request) {
	operatorID := r.PathValue("id")
	if operatorID == "" {
		http.Error(w, "operator ID is required", http.StatusBadRequest)
		return
	}

	profile, err := or.os.GetProfile(operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "operator not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get operator profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleUpsertOperator handles PUT /api/operators/{id}
// Request body: operatorRequest
func (or *OperatorRouter) HandleUpsertOperator(w http.ResponseWriter, r *http.Request) {
	operatorID := r.PathValue("id")
	if operatorID == "" {
		http.Error(w, "operator ID is required", http.StatusBadRequest)
		return
	}

	var req operatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := or.os.UpsertProfile(operatorID, req.DisplayName, req.Preferences); err != nil {
		http.Error(w, "failed to save operator profile: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
