package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// ActorRepository defines data access for audit actors
type ActorRepository interface {
	// GetOrCreate returns the actor with the given username, creating and
	// activating it if absent. Idempotent.
	GetOrCreate(ctx context.Context, username string) (*medialib.Actor, error)
}
