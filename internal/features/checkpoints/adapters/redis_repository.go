package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"fleet-tracker/internal/features/checkpoints/domain"

	"github.com/redis/go-redis/v9"
)

// checkpointsKey is the Redis HASH holding the taxonomy, field = canonical
// name, value = checkpoint JSON.
const checkpointsKey = "checkpoints"

// RedisCheckpointRepository implements ports.CheckpointRepository on Redis.
type RedisCheckpointRepository struct {
	client *redis.Client
}

// NewRedisCheckpointRepository creates a new RedisCheckpointRepository.
func NewRedisCheckpointRepository(client *redis.Client) *RedisCheckpointRepository {
	return &RedisCheckpointRepository{client: client}
}

// Save stores or replaces a checkpoint under its canonical name.
func (r *RedisCheckpointRepository) Save(ctx context.Context, cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	if err := r.client.HSet(ctx, checkpointsKey, cp.Name, data).Err(); err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", cp.Name, err)
	}
	return nil
}

// Get retrieves a checkpoint by canonical name.
func (r *RedisCheckpointRepository) Get(ctx context.Context, name string) (*domain.Checkpoint, error) {
	data, err := r.client.HGet(ctx, checkpointsKey, domain.Normalize(name)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint %s: %w", name, err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint %s: %w", name, err)
	}
	return &cp, nil
}

// List returns every stored checkpoint sorted by route order.
func (r *RedisCheckpointRepository) List(ctx context.Context) ([]domain.Checkpoint, error) {
	entries, err := r.client.HGetAll(ctx, checkpointsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	cps := make([]domain.Checkpoint, 0, len(entries))
	for name, raw := range entries {
		var cp domain.Checkpoint
		if err := json.Unmarshal([]byte(raw), &cp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checkpoint %s: %w", name, err)
		}
		cps = append(cps, cp)
	}

	sort.Slice(cps, func(i, j int) bool { return cps[i].Order < cps[j].Order })
	return cps, nil
}

// Delete soft-deletes a checkpoint; the record stays in the hash so
// historical snapshots can still be interpreted.
func (r *RedisCheckpointRepository) Delete(ctx context.Context, name string) error {
	cp, err := r.Get(ctx, name)
	if err != nil {
		return err
	}

	now := time.Now()
	cp.DeletedAt = &now
	cp.IsActive = false
	cp.UpdatedAt = now
	return r.Save(ctx, cp)
}

// Count returns the number of stored checkpoints.
func (r *RedisCheckpointRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.HLen(ctx, checkpointsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count checkpoints: %w", err)
	}
	return n, nil
}

// Seed stores the given checkpoints only when the hash is empty.
func (r *RedisCheckpointRepository) Seed(ctx context.Context, cps []domain.Checkpoint) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i := range cps {
		if err := r.Save(ctx, &cps[i]); err != nil {
			return err
		}
	}
	return nil
}
