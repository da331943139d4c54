package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// AncestryResolver answers ancestor questions against current store state
// without mutating it.
type AncestryResolver interface {
	// WouldCreateCycle reports whether setting folderID's parent to
	// newParentID would make the folder its own ancestor. The walk is
	// unbounded for correctness but guarded: a chain longer than the
	// configured limit means the store is corrupt and yields a fatal
	// integrity error.
	WouldCreateCycle(ctx context.Context, folderID, newParentID int64) (bool, error)

	// Chain returns the IDs on the path from folderID to its root, self
	// first, with the same corruption guard as WouldCreateCycle. Bulk moves
	// snapshot the target's chain once so per-item cycle decisions stay
	// order-independent.
	Chain(ctx context.Context, folderID int64) ([]int64, error)

	// Ancestors returns the chain from folderID up to its root, bounded to
	// depth links. Display use only; cycle detection goes through
	// WouldCreateCycle.
	Ancestors(ctx context.Context, folderID int64, depth int) ([]medialib.Ancestor, error)
}
