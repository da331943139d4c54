package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"medialib/internal/domain"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
	"medialib/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService medialibSvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService medialibSvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req medialibSvc.CreateFolderRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	folder, err := h.folderService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// ListFolders lists folders under a parent (root when parentId is absent),
// with optional free-text search and priority-ordered sorting
// GET /api/folders?parentId=&sort=field:direction&_q=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := medialibSvc.ListFoldersRequest{
		Query: query.Get("_q"),
	}

	if raw := query.Get("parentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "parentId must be a positive integer")
			return
		}
		req.ParentID = &id
	}

	sort, err := parseSort(query["sort"])
	if err != nil {
		handleError(w, err)
		return
	}
	req.Sort = sort

	folders, err := h.folderService.List(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetFolder retrieves a folder with live counts and its ancestor chain
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	folder, err := h.folderService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder renames and/or moves a folder
// PUT /api/folders/{id} and PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req medialibSvc.UpdateFolderRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	folder, err := h.folderService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder recursively deletes a folder and reports every removed ID
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted, err := h.folderService.Delete(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deleted)
}

// parseSort turns repeated "field:direction" query values into ordered sort
// keys. Direction defaults to ascending; field validity is checked where the
// column whitelist lives.
func parseSort(values []string) ([]medialibRepo.SortKey, error) {
	var keys []medialibRepo.SortKey
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			field, dir, _ := strings.Cut(item, ":")
			key := medialibRepo.SortKey{Field: field}
			switch strings.ToLower(dir) {
			case "", "asc":
			case "desc":
				key.Desc = true
			default:
				return nil, &domain.ValidationError{Message: "sort direction must be asc or desc"}
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}
