package ports

import (
	"context"

	"fleet-tracker/internal/features/checkpoints/domain"
)

// CheckpointRepository defines the secondary port for checkpoint storage.
type CheckpointRepository interface {
	Save(ctx context.Context, cp *domain.Checkpoint) error
	Get(ctx context.Context, name string) (*domain.Checkpoint, error)
	// List returns every stored checkpoint, including inactive and
	// soft-deleted ones, sorted by route order.
	List(ctx context.Context) ([]domain.Checkpoint, error)
	// Delete soft-deletes a checkpoint; historical snapshots keep
	// referencing it by name.
	Delete(ctx context.Context, name string) error
	Count(ctx context.Context) (int64, error)
	// Seed stores the given checkpoints only when the store is empty.
	Seed(ctx context.Context, cps []domain.Checkpoint) error
}

// CheckpointRegistry defines the primary port for the read-mostly, in-process
// checkpoint cache consulted by the ingestion pipeline.
type CheckpointRegistry interface {
	// LoadActive returns all active, non-deleted checkpoints ordered by
	// route order ascending.
	LoadActive(ctx context.Context) ([]domain.Checkpoint, error)
	// Reload forces a cache refresh from the backing store.
	Reload(ctx context.Context) error
	// Invalidate drops the cache; the next read reloads. Wired to every
	// checkpoint admin mutation, never inferred.
	Invalidate()
	// Resolve maps raw location text to the best-matching checkpoint.
	Resolve(ctx context.Context, raw string) (domain.MatchResult, error)
}
