package handler

import (
	"log/slog"
	"net/http"

	medialibSvc "medialib/internal/domain/services/medialib"
	"medialib/internal/httputil"
)

// TreeHandler handles full-structure HTTP requests
type TreeHandler struct {
	treeService medialibSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService medialibSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetStructure returns the whole library as a nested forest
// GET /api/folders-structure
func (h *TreeHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	structure, err := h.treeService.GetStructure(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, structure)
}

// HealthCheck reports process liveness
// GET /health
func (h *TreeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
