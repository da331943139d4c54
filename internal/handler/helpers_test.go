package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medialib/internal/domain"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    int
		wantErr bool
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single ascending default", values: []string{"name"}, want: 1},
		{name: "explicit direction", values: []string{"name:desc"}, want: 1},
		{name: "comma separated pairs", values: []string{"name:desc,createdAt:asc"}, want: 2},
		{name: "repeated params keep priority order", values: []string{"name:desc", "id"}, want: 2},
		{name: "bad direction", values: []string{"name:sideways"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := parseSort(tt.values)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("parseSort(%v) = %v, want validation error", tt.values, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSort(%v): %v", tt.values, err)
			}
			if len(keys) != tt.want {
				t.Errorf("len(keys) = %d, want %d", len(keys), tt.want)
			}
		})
	}
}

func TestParseSortDirections(t *testing.T) {
	keys, err := parseSort([]string{"name:desc,id:asc"})
	if err != nil {
		t.Fatalf("parseSort: %v", err)
	}
	if !keys[0].Desc {
		t.Error("first key should be descending")
	}
	if keys[1].Desc {
		t.Error("second key should be ascending")
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "typed validation", err: &domain.ValidationError{Message: "bad"}, wantStatus: http.StatusBadRequest},
		{name: "typed not found", err: &domain.NotFoundError{Message: "gone"}, wantStatus: http.StatusNotFound},
		{name: "typed invalid operation", err: &domain.InvalidOperationError{Message: "cycle"}, wantStatus: http.StatusBadRequest},
		{name: "typed integrity", err: &domain.IntegrityError{Message: "corrupt"}, wantStatus: http.StatusInternalServerError},
		{name: "wrapped sentinel not found", err: errors.Join(domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "opaque error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want problem+json", ct)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "valid", raw: "42", want: 42},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "non-numeric", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/folders/"+tt.raw, nil)
			r.SetPathValue("id", tt.raw)

			id, err := parseID(r)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("parseID(%q) = %v, want validation error", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseID(%q): %v", tt.raw, err)
			}
			if id != tt.want {
				t.Errorf("id = %d, want %d", id, tt.want)
			}
		})
	}
}
