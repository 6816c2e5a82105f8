package registry

import (
	"context"
	"fmt"
	"sync"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/checkpoints/domain"
	"fleet-tracker/internal/features/checkpoints/ports"

	"go.uber.org/zap"
)

// Registry is the read-mostly, in-process cache over the checkpoint store.
// It is loaded lazily on first read and refreshed only through Reload or
// Invalidate; checkpoint admin mutations call Invalidate explicitly rather
// than the cache inferring staleness.
type Registry struct {
	repo ports.CheckpointRepository

	mu     sync.RWMutex
	active []domain.Checkpoint
	loaded bool
}

// New creates a Registry over the given repository.
func New(repo ports.CheckpointRepository) *Registry {
	return &Registry{repo: repo}
}

// LoadActive returns all active, non-deleted checkpoints ordered by route
// order ascending, loading the cache on first use.
func (r *Registry) LoadActive(ctx context.Context) ([]domain.Checkpoint, error) {
	r.mu.RLock()
	if r.loaded {
		cps := make([]domain.Checkpoint, len(r.active))
		copy(cps, r.active)
		r.mu.RUnlock()
		return cps, nil
	}
	r.mu.RUnlock()

	if err := r.Reload(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cps := make([]domain.Checkpoint, len(r.active))
	copy(cps, r.active)
	return cps, nil
}

// Reload forces a cache refresh from the backing store.
func (r *Registry) Reload(ctx context.Context) error {
	all, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("registry: failed to reload checkpoints: %w", err)
	}

	active := make([]domain.Checkpoint, 0, len(all))
	for _, cp := range all {
		if cp.IsActive && !cp.IsDeleted() {
			active = append(active, cp)
		}
	}

	r.mu.Lock()
	r.active = active
	r.loaded = true
	r.mu.Unlock()

	logger.Get().Debug("Checkpoint registry reloaded", zap.Int("active", len(active)))
	return nil
}

// Invalidate drops the cache so the next read reloads from the store.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.loaded = false
	r.active = nil
	r.mu.Unlock()
}

// Resolve maps raw location text to the best-matching active checkpoint.
func (r *Registry) Resolve(ctx context.Context, raw string) (domain.MatchResult, error) {
	cps, err := r.LoadActive(ctx)
	if err != nil {
		return domain.MatchResult{Tier: domain.MatchNone}, err
	}
	return domain.Match(raw, cps), nil
}
