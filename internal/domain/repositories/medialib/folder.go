package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// SortKey is one entry of a priority-ordered sort list
type SortKey struct {
	Field string // name, createdAt, updatedAt, id
	Desc  bool
}

// ListFoldersOptions filters and orders a folder listing
type ListFoldersOptions struct {
	ParentID *int64 // nil = root-level folders
	Query    string // free-text filter on name
	Sort     []SortKey
}

// FolderRepository defines data access operations for folders.
// GetByID and List annotate records with live child/file counts.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *medialib.Folder) error

	// GetByID retrieves a folder by ID with live counts
	GetByID(ctx context.Context, id int64) (*medialib.Folder, error)

	// Update updates a folder's name, parent reference and audit fields
	Update(ctx context.Context, folder *medialib.Folder) error

	// Delete deletes a folder row
	Delete(ctx context.Context, id int64) error

	// List lists folders under a parent with live counts; ties are broken
	// by id ascending for determinism
	List(ctx context.Context, opts ListFoldersOptions) ([]medialib.Folder, error)

	// ListChildren lists immediate child folders
	ListChildren(ctx context.Context, parentID *int64) ([]medialib.Folder, error)

	// ListAll retrieves every folder (flat list)
	ListAll(ctx context.Context) ([]medialib.Folder, error)

	// LockTree takes the transaction-scoped structural lock. Every writer
	// that can change the shape of the tree must hold it so that no other
	// structural write interleaves between a cycle check and its commit.
	// Must be called inside a transaction.
	LockTree(ctx context.Context) error
}
