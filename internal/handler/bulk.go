package handler

import (
	"log/slog"
	"net/http"

	medialibSvc "medialib/internal/domain/services/medialib"
	"medialib/internal/httputil"
)

// BulkHandler handles mixed folder+file batch requests
type BulkHandler struct {
	bulkService medialibSvc.BulkService
	logger      *slog.Logger
}

// NewBulkHandler creates a new bulk handler
func NewBulkHandler(bulkService medialibSvc.BulkService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{
		bulkService: bulkService,
		logger:      logger,
	}
}

// BulkDelete deletes a mixed batch of files and folders
// POST /api/bulk-delete
func (h *BulkHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req medialibSvc.BulkDeleteRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	result, err := h.bulkService.BulkDelete(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BulkMove moves a mixed batch of files and folders into a target folder
// PUT /api/bulk-move
func (h *BulkHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	var req medialibSvc.BulkMoveRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	result, err := h.bulkService.BulkMove(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
