package medialib

import (
	"context"
	"sync"

	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

// systemActorUsername identifies the built-in actor that audit columns
// reference for server-initiated writes.
const systemActorUsername = "api-user"

type actorProvider struct {
	actorRepo medialibRepo.ActorRepository

	mu     sync.Mutex
	cached *models.Actor
}

// NewActorProvider creates a new actor provider
func NewActorProvider(actorRepo medialibRepo.ActorRepository) medialibSvc.ActorProvider {
	return &actorProvider{actorRepo: actorRepo}
}

// SystemActor returns the built-in system actor, creating it on first use.
// The upsert is idempotent, so concurrent first calls converge on one row;
// the resolved actor is cached for the life of the process.
func (p *actorProvider) SystemActor(ctx context.Context) (*models.Actor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}

	actor, err := p.actorRepo.GetOrCreate(ctx, systemActorUsername)
	if err != nil {
		return nil, err
	}

	p.cached = actor
	return actor, nil
}
