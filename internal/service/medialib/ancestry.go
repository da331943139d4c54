package medialib

import (
	"context"
	"fmt"

	"medialib/internal/config"
	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

// ancestryResolver implements the AncestryResolver interface by walking
// parent references through the folder repository. It never mutates state;
// callers that need the check-then-write guarantee run it inside their own
// transaction with the structural lock held.
type ancestryResolver struct {
	folderRepo medialibRepo.FolderRepository
}

// NewAncestryResolver creates a new ancestry resolver
func NewAncestryResolver(folderRepo medialibRepo.FolderRepository) medialibSvc.AncestryResolver {
	return &ancestryResolver{folderRepo: folderRepo}
}

// Chain walks from folderID to its root and returns the visited IDs,
// self first. The walk is bounded: a chain longer than CycleWalkLimit means
// the store already holds a cycle or a corrupted parent reference, which is
// fatal and must never be silently tolerated.
func (r *ancestryResolver) Chain(ctx context.Context, folderID int64) ([]int64, error) {
	var chain []int64
	currentID := folderID

	for steps := 0; ; steps++ {
		if steps >= config.CycleWalkLimit {
			return nil, &domain.IntegrityError{
				Message: fmt.Sprintf("ancestor chain of folder %d exceeds %d links", folderID, config.CycleWalkLimit),
			}
		}

		folder, err := r.folderRepo.GetByID(ctx, currentID)
		if err != nil {
			return nil, err
		}

		chain = append(chain, folder.ID)
		if folder.ParentID == nil {
			return chain, nil
		}
		currentID = *folder.ParentID
	}
}

// WouldCreateCycle reports whether setting folderID's parent to newParentID
// would make the folder its own ancestor
func (r *ancestryResolver) WouldCreateCycle(ctx context.Context, folderID, newParentID int64) (bool, error) {
	if folderID == newParentID {
		return true, nil
	}

	chain, err := r.Chain(ctx, newParentID)
	if err != nil {
		return false, err
	}

	for _, id := range chain {
		if id == folderID {
			return true, nil
		}
	}
	return false, nil
}

// Ancestors returns the chain from folderID up to its root, self first,
// bounded to depth links. Display use only; the loop bound is the display
// depth, not the integrity guard.
func (r *ancestryResolver) Ancestors(ctx context.Context, folderID int64, depth int) ([]models.Ancestor, error) {
	chain := make([]models.Ancestor, 0, depth)
	currentID := folderID

	for len(chain) < depth {
		folder, err := r.folderRepo.GetByID(ctx, currentID)
		if err != nil {
			return nil, err
		}

		chain = append(chain, models.Ancestor{
			ID:       folder.ID,
			Name:     folder.Name,
			ParentID: folder.ParentID,
		})

		if folder.ParentID == nil {
			break
		}
		currentID = *folder.ParentID
	}

	return chain, nil
}
