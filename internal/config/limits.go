package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// AncestorDisplayDepth bounds the ancestor chain attached to folder
	// reads (breadcrumbs). Display only; validation walks further.
	AncestorDisplayDepth = 5

	// CycleWalkLimit guards the cycle-detection walk against a corrupted
	// store producing an infinite parent chain. Exceeding it is fatal.
	CycleWalkLimit = 1000

	// MaxUploadBytes bounds multipart upload memory buffering.
	MaxUploadBytes = 64 << 20
)
