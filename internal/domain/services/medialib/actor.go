package medialib

import (
	"context"

	"medialib/internal/domain/models/medialib"
)

// ActorProvider supplies the identity attached to audit fields on mutating
// calls. Injected rather than looked up ad hoc so the actor is explicit and
// testable.
type ActorProvider interface {
	// SystemActor returns the synthetic system actor, provisioning it on
	// first use. Idempotent.
	SystemActor(ctx context.Context) (*medialib.Actor, error)
}
