package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// FileRepository defines data access operations for file metadata records
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *medialib.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id int64) (*medialib.File, error)

	// Update updates a file's metadata and folder reference
	Update(ctx context.Context, file *medialib.File) error

	// Delete deletes a file record. Exactly-once: a second delete of the
	// same ID reports not-found.
	Delete(ctx context.Context, id int64) error

	// ListByFolder lists files in a folder (nil = unfiled root-level files)
	ListByFolder(ctx context.Context, folderID *int64) ([]medialib.File, error)

	// ListAll retrieves every file record (flat list, no payloads)
	ListAll(ctx context.Context) ([]medialib.File, error)
}
