package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"medialib/internal/config"
	"medialib/internal/domain"
	medialibSvc "medialib/internal/domain/services/medialib"
	"medialib/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService medialibSvc.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService medialibSvc.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// uploadMeta is the metadata half of a multipart upload. Clients send it
// either as individual form fields or as one "data" field holding JSON.
type uploadMeta struct {
	Name            *string `json:"name"`
	FolderID        *int64  `json:"folderId"`
	AlternativeText *string `json:"alternativeText"`
	Caption         *string `json:"caption"`
}

// UploadFile accepts a multipart upload and creates the file record
// POST /api/files
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	payload, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "no file provided")
		return
	}
	defer payload.Close()

	meta, err := parseUploadMeta(r)
	if err != nil {
		handleError(w, err)
		return
	}

	name := header.Filename
	if meta.Name != nil && strings.TrimSpace(*meta.Name) != "" {
		name = *meta.Name
	}

	req := &medialibSvc.CreateFileRequest{
		Name:            name,
		FolderID:        meta.FolderID,
		AlternativeText: meta.AlternativeText,
		Caption:         meta.Caption,
		MimeType:        detectMimeType(header.Header.Get("Content-Type"), header.Filename),
		SizeBytes:       header.Size,
		Content:         payload,
	}

	file, err := h.fileService.Create(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, dataEnvelope{Data: file})
}

// GetFile retrieves file metadata
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	file, err := h.fileService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, dataEnvelope{Data: file})
}

// UpdateFile partially updates file metadata
// PUT /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req medialibSvc.UpdateFileRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	file, err := h.fileService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, dataEnvelope{Data: file})
}

// DeleteFile deletes a file record and its payload
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	file, err := h.fileService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DownloadFile streams the stored payload
// GET /api/files/{id}/download
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	rc, file, err := h.fileService.Open(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log the broken stream
		h.logger.Warn("payload stream interrupted", "file_id", id, "error", err)
	}
}

// parseUploadMeta reads upload metadata from either the "data" JSON field or
// individual form fields, whichever the client sent.
func parseUploadMeta(r *http.Request) (*uploadMeta, error) {
	var meta uploadMeta

	if data := r.FormValue("data"); data != "" {
		raw := []byte(strings.TrimSpace(data))
		// Double-encoded: unwrap the outer string first
		if len(raw) > 0 && raw[0] == '"' {
			var inner string
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, &domain.ValidationError{Message: "invalid upload metadata"}
			}
			raw = []byte(inner)
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, &domain.ValidationError{Message: "invalid upload metadata"}
		}
		return &meta, nil
	}

	if v := r.FormValue("name"); v != "" {
		meta.Name = &v
	}
	if v := r.FormValue("folderId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, &domain.ValidationError{Message: "invalid upload metadata"}
		}
		meta.FolderID = &id
	}
	if v := r.FormValue("alternativeText"); v != "" {
		meta.AlternativeText = &v
	}
	if v := r.FormValue("caption"); v != "" {
		meta.Caption = &v
	}

	return &meta, nil
}

func detectMimeType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return mt
		}
	}
	if mt := mime.TypeByExtension(filepath.Ext(filename)); mt != "" {
		if parsed, _, err := mime.ParseMediaType(mt); err == nil {
			return parsed
		}
	}
	return "application/octet-stream"
}
