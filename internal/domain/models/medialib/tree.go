package medialib

import "time"

// Structure is the root of the materialized folder forest
type Structure struct {
	Folders []*FolderNode `json:"folders"`
	Files   []FileNode    `json:"files"`
}

// FolderNode is a folder in the materialized tree with nested children.
// Counts are len(Children)/len(Files) by construction, so they cannot drift
// from the attached sets.
type FolderNode struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	ParentID   *int64        `json:"parentId"`
	ChildCount int           `json:"childCount"`
	FileCount  int           `json:"fileCount"`
	Children   []*FolderNode `json:"children"` // pointers for proper nesting
	Files      []FileNode    `json:"files"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// FileNode is a file in the materialized tree (metadata only)
type FileNode struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	FolderID  *int64    `json:"folderId"`
	MimeType  string    `json:"mimeType"`
	SizeBytes int64     `json:"sizeBytes"`
	UpdatedAt time.Time `json:"updatedAt"`
}
