package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/wealthmap/wealthmap-backend/internal/api/response"
)

// TreeStateHandler owns the expand/collapse state of the rendered tree. The
// priced tree itself is immutable; which rows are open is presentation
// state, kept here in a side table keyed by dot-joined node path so it
// survives revaluation passes.
type TreeStateHandler struct {
	mu   sync.RWMutex
	open map[string]bool
}

// NewTreeStateHandler creates a new TreeStateHandler with every row
// collapsed.
func NewTreeStateHandler() *TreeStateHandler {
	return &TreeStateHandler{open: make(map[string]bool)}
}

// State returns the set of node paths currently expanded.
//
// Endpoint: GET /api/valuation/state
func (h *TreeStateHandler) State(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	open := make(map[string]bool, len(h.open))
	for k, v := range h.open {
		open[k] = v
	}
	h.mu.RUnlock()
	response.RespondJSON(w, http.StatusOK, map[string]map[string]bool{"open": open})
}

// stateUpdate is the PUT payload toggling one node.
type stateUpdate struct {
	Path   string `json:"path"`
	IsOpen bool   `json:"isOpen"`
}

// Update sets the expand state for one node path.
//
// Endpoint: PUT /api/valuation/state
func (h *TreeStateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update stateUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || update.Path == "" {
		response.RespondError(w, http.StatusBadRequest, "expected {path, isOpen}", nil)
		return
	}

	h.mu.Lock()
	if update.IsOpen {
		h.open[update.Path] = true
	} else {
		delete(h.open, update.Path)
	}
	h.mu.Unlock()

	response.RespondJSON(w, http.StatusNoContent, nil)
}
