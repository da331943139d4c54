package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
)

// PostgresActorRepository implements the ActorRepository interface
type PostgresActorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewActorRepository creates a new actor repository
func NewActorRepository(config *RepositoryConfig) medialibRepo.ActorRepository {
	return &PostgresActorRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetOrCreate returns the actor with the given username, creating it on
// first use. The upsert keeps the call idempotent under concurrency.
func (r *PostgresActorRepository) GetOrCreate(ctx context.Context, username string) (*models.Actor, error) {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		INSERT INTO %s (username, is_active)
		VALUES ($1, true)
		ON CONFLICT (username) DO UPDATE SET is_active = true
		RETURNING id, username, is_active
	`, r.tables.Actors)

	var actor models.Actor
	err := db.QueryRow(ctx, query, username).Scan(&actor.ID, &actor.Username, &actor.IsActive)
	if err != nil {
		return nil, fmt.Errorf("get or create actor: %w", err)
	}

	return &actor, nil
}
