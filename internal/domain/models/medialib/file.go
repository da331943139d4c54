package medialib

import "time"

// File is a media file record. Files are always leaves: they reference a
// folder (or none, for unfiled root-level files) and never own other entities.
// The raw payload lives with the binary storage collaborator under StorageKey.
type File struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	AlternativeText *string   `json:"alternativeText" db:"alternative_text"`
	Caption         *string   `json:"caption" db:"caption"`
	FolderID        *int64    `json:"folderId" db:"folder_id"` // NULL = unfiled
	StorageKey      string    `json:"-" db:"storage_key"`
	MimeType        string    `json:"mimeType" db:"mime_type"`
	SizeBytes       int64     `json:"sizeBytes" db:"size_bytes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
