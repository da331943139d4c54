package medialib

import "time"

// Folder is a node in the media library tree. The parent reference graph
// restricted to folders is a forest: no cycles, at most one parent.
type Folder struct {
	ID          int64     `json:"id" db:"id"`
	ParentID    *int64    `json:"parentId" db:"parent_id"` // NULL = root level
	Name        string    `json:"name" db:"name"`
	ChildCount  int       `json:"childCount"` // live count, never a stored counter
	FileCount   int       `json:"fileCount"`
	Ancestors   []Ancestor `json:"ancestors,omitempty"` // self→root, display depth only
	CreatedByID *int64    `json:"createdById,omitempty" db:"created_by_id"`
	UpdatedByID *int64    `json:"updatedById,omitempty" db:"updated_by_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Ancestor is one link of a folder's ancestor chain (breadcrumb form)
type Ancestor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}
