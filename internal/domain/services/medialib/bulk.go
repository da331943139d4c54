package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// BulkService applies a move or delete across a mixed list of folder and file
// identifiers as one logical request with partial-failure semantics: a single
// item's failure never blocks the remaining items, and the aggregate result is
// order-independent.
type BulkService interface {
	BulkDelete(ctx context.Context, req *BulkDeleteRequest) (*BulkDeleteResult, error)
	BulkMove(ctx context.Context, req *BulkMoveRequest) (*BulkMoveResult, error)
}

// BulkDeleteRequest requires at least one non-empty identifier list
type BulkDeleteRequest struct {
	FileIDs   []int64 `json:"fileIds"`
	FolderIDs []int64 `json:"folderIds"`
}

// BulkMoveRequest moves files and folders into a target folder (nil = root)
type BulkMoveRequest struct {
	FileIDs        []int64 `json:"fileIds"`
	FolderIDs      []int64 `json:"folderIds"`
	TargetFolderID *int64  `json:"targetFolderId"`
}

// BulkFailure reports one failed item of a bulk request
type BulkFailure struct {
	Kind   string `json:"kind"` // "file" or "folder"
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BulkDeleteResult enumerates deleted identifiers (cascaded descendants
// included) and per-item failures
type BulkDeleteResult struct {
	DeletedFiles   []int64       `json:"deletedFiles"`
	DeletedFolders []int64       `json:"deletedFolders"`
	Failures       []BulkFailure `json:"failures"`
}

// BulkMoveResult carries the moved records and per-item failures
type BulkMoveResult struct {
	MovedFiles   []medialib.File   `json:"movedFiles"`
	MovedFolders []medialib.Folder `json:"movedFolders"`
	Failures     []BulkFailure     `json:"failures"`
}
