package medialib

import (
	"context"
	"io"

	"medialib/internal/domain/models/medialib"
	"medialib/internal/httputil"
)

// FileService handles file business logic. Files bind to a folder at creation
// time and are always leaves.
type FileService interface {
	// Create uploads a payload through the binary storage collaborator and
	// creates the metadata record
	Create(ctx context.Context, req *CreateFileRequest) (*medialib.File, error)

	// Get retrieves a file record
	Get(ctx context.Context, id int64) (*medialib.File, error)

	// Update partially updates file metadata; a folder change is a move and
	// validates target folder existence
	Update(ctx context.Context, id int64, req *UpdateFileRequest) (*medialib.File, error)

	// Delete removes the metadata record exactly once, then asks the binary
	// storage collaborator to drop the payload
	Delete(ctx context.Context, id int64) error

	// Open streams the stored payload for a file
	Open(ctx context.Context, id int64) (io.ReadCloser, *medialib.File, error)
}

// CreateFileRequest represents a file upload request
type CreateFileRequest struct {
	Name            string
	FolderID        *int64 // nil = unfiled
	AlternativeText *string
	Caption         *string
	MimeType        string
	SizeBytes       int64
	Content         io.Reader
}

// UpdateFileRequest represents a partial file update.
// FolderID is tri-state: absent = keep, null = move to root, value = move.
type UpdateFileRequest struct {
	Name            *string                 `json:"name,omitempty"`
	AlternativeText httputil.OptionalString `json:"alternativeText,omitempty"`
	Caption         httputil.OptionalString `json:"caption,omitempty"`
	FolderID        httputil.OptionalInt64  `json:"folderId,omitempty"`
}
