package handler

import (
	"errors"
	"net/http"
	"strconv"

	"medialib/internal/domain"
	"medialib/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Typed errors carry
// their own status; anything else is a 500 with the detail suppressed.
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), domain.Kind(err), err.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, domain.Kind(err), err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, domain.Kind(err), err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, domain.Kind(err), err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "InternalError", "internal server error")
	}
}

// parseID extracts and parses the {id} path segment
func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Message: "id must be a positive integer"}
	}
	return id, nil
}

// dataEnvelope wraps file responses the way the public API shapes them
type dataEnvelope struct {
	Data interface{} `json:"data"`
}
