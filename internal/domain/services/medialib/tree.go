package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// TreeService materializes the full folder forest for presentation
type TreeService interface {
	// GetStructure builds the nested tree from one consistent read. No
	// interleaved mutation can produce a dangling or duplicated node.
	GetStructure(ctx context.Context) (*medialib.Structure, error)
}
