package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	"medialib/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// Create creates a new folder
	Create(ctx context.Context, req *CreateFolderRequest) (*medialib.Folder, error)

	// Get retrieves a folder with live counts and its ancestor chain
	// (bounded to display depth)
	Get(ctx context.Context, id int64) (*medialib.Folder, error)

	// List lists folders under a parent with live counts
	List(ctx context.Context, req *ListFoldersRequest) ([]medialib.Folder, error)

	// Update renames and/or moves a folder. Moves run the cycle check in the
	// same atomic unit as the write.
	Update(ctx context.Context, id int64, req *UpdateFolderRequest) (*medialib.Folder, error)

	// Delete recursively deletes a folder, its descendant folders and all
	// contained files as one atomic unit, reporting every deleted identifier.
	Delete(ctx context.Context, id int64) (*DeleteFolderResult, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"` // nil = root
}

// ListFoldersRequest represents a folder listing request
type ListFoldersRequest struct {
	ParentID *int64
	Query    string
	Sort     []medialibRepo.SortKey
}

// UpdateFolderRequest represents a folder update request.
// ParentID is tri-state: absent = keep, null = move to root, value = move.
type UpdateFolderRequest struct {
	Name     *string                `json:"name,omitempty"`
	ParentID httputil.OptionalInt64 `json:"parentId,omitempty"`
}

// DeleteFolderResult enumerates everything a recursive delete removed
type DeleteFolderResult struct {
	FolderIDs []int64 `json:"deletedFolders"`
	FileIDs   []int64 `json:"deletedFiles"`
}
