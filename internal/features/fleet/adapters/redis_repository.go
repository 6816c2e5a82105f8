package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"fleet-tracker/internal/features/fleet/domain"

	"github.com/redis/go-redis/v9"
)

// Key layout: each snapshot document lives at fleet:snapshot:<id>, its
// flattened position rows at fleet:positions:<id>, and fleet:snapshots is a
// ZSET indexing non-deleted snapshot ids by report timestamp.
const (
	snapshotKeyPrefix  = "fleet:snapshot:"
	positionsKeyPrefix = "fleet:positions:"
	snapshotIndexKey   = "fleet:snapshots"
)

// RedisSnapshotRepository implements ports.SnapshotRepository on Redis.
type RedisSnapshotRepository struct {
	client *redis.Client
}

// NewRedisSnapshotRepository creates a new RedisSnapshotRepository.
func NewRedisSnapshotRepository(client *redis.Client) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client}
}

func snapshotKey(id string) string  { return snapshotKeyPrefix + id }
func positionsKey(id string) string { return positionsKeyPrefix + id }

// SaveSnapshot stores the snapshot document and indexes it by timestamp.
func (r *RedisSnapshotRepository) SaveSnapshot(ctx context.Context, s *domain.FleetSnapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(s.ID), data, 0)
	pipe.ZAdd(ctx, snapshotIndexKey, redis.Z{
		Score:  float64(s.Timestamp.UnixNano()),
		Member: s.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.ID, err)
	}
	return nil
}

// SavePositions bulk-writes a snapshot's position rows as one JSON array.
func (r *RedisSnapshotRepository) SavePositions(ctx context.Context, snapshotID string, positions []domain.TruckPosition) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	if err := r.client.Set(ctx, positionsKey(snapshotID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save positions for snapshot %s: %w", snapshotID, err)
	}
	return nil
}

// GetSnapshot retrieves a snapshot by id. Soft-deleted snapshots are treated
// as absent.
func (r *RedisSnapshotRepository) GetSnapshot(ctx context.Context, id string) (*domain.FleetSnapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", id, err)
	}

	var s domain.FleetSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	if s.DeletedAt != nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return &s, nil
}

// ListSnapshots returns non-deleted snapshots newest first plus the total
// count for pagination.
func (r *RedisSnapshotRepository) ListSnapshots(ctx context.Context, limit, skip int) ([]domain.FleetSnapshot, int64, error) {
	total, err := r.client.ZCard(ctx, snapshotIndexKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	ids, err := r.client.ZRevRange(ctx, snapshotIndexKey, int64(skip), int64(skip+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots := make([]domain.FleetSnapshot, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetSnapshot(ctx, id)
		if err == domain.ErrSnapshotNotFound {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, total, nil
}

// LatestSnapshotID returns the id of the newest non-deleted snapshot.
func (r *RedisSnapshotRepository) LatestSnapshotID(ctx context.Context) (string, error) {
	ids, err := r.client.ZRevRange(ctx, snapshotIndexKey, 0, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	if len(ids) == 0 {
		return "", domain.ErrNoSnapshots
	}
	return ids[0], nil
}

// GetPositions retrieves a snapshot's position rows. A snapshot stored
// without rows yields an empty slice, not an error.
func (r *RedisSnapshotRepository) GetPositions(ctx context.Context, snapshotID string) ([]domain.TruckPosition, error) {
	data, err := r.client.Get(ctx, positionsKey(snapshotID)).Bytes()
	if err == redis.Nil {
		return []domain.TruckPosition{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get positions for snapshot %s: %w", snapshotID, err)
	}

	var positions []domain.TruckPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal positions for snapshot %s: %w", snapshotID, err)
	}
	return positions, nil
}

// MarkDeleted rewrites the snapshot with its deleted flag set and drops it
// from the chronological index so listings skip it.
func (r *RedisSnapshotRepository) MarkDeleted(ctx context.Context, s *domain.FleetSnapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(s.ID), data, 0)
	pipe.ZRem(ctx, snapshotIndexKey, s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark snapshot %s deleted: %w", s.ID, err)
	}
	return nil
}

// DeletePositions removes a snapshot's position rows.
func (r *RedisSnapshotRepository) DeletePositions(ctx context.Context, snapshotID string) error {
	if err := r.client.Del(ctx, positionsKey(snapshotID)).Err(); err != nil {
		return fmt.Errorf("failed to delete positions for snapshot %s: %w", snapshotID, err)
	}
	return nil
}
