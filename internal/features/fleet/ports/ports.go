package ports

import (
	"context"

	"fleet-tracker/internal/features/fleet/domain"
)

// IngestService defines the primary port for report ingestion.
type IngestService interface {
	// Ingest parses, resolves, aggregates, and persists one uploaded report,
	// returning the snapshot summary. Parse-level problems surface as
	// warnings on the snapshot, not errors.
	Ingest(ctx context.Context, meta domain.UploadMeta, data []byte) (*domain.FleetSnapshot, error)
}

// QueryService defines the primary port for snapshot reads and deletion.
type QueryService interface {
	ListSnapshots(ctx context.Context, limit, skip int) ([]domain.FleetSnapshot, int64, error)
	LatestSnapshot(ctx context.Context) (*domain.FleetSnapshot, error)
	Positions(ctx context.Context, filter domain.PositionFilter) ([]domain.TruckPosition, error)
	TrucksAtCheckpoint(ctx context.Context, name, snapshotID string) (*domain.CheckpointTrucks, error)
	CopyableList(ctx context.Context, name, snapshotID, direction string, format domain.ListFormat) (string, error)
	DeleteSnapshot(ctx context.Context, id string) error
	CheckpointDistribution(ctx context.Context, snapshotID string) ([]domain.DistributionEntry, error)
}

// SnapshotRepository defines the secondary port for snapshot storage.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, s *domain.FleetSnapshot) error
	// SavePositions bulk-writes the flattened position rows for a snapshot.
	SavePositions(ctx context.Context, snapshotID string, positions []domain.TruckPosition) error
	// GetSnapshot returns domain.ErrSnapshotNotFound for unknown or
	// soft-deleted ids.
	GetSnapshot(ctx context.Context, id string) (*domain.FleetSnapshot, error)
	// ListSnapshots returns non-deleted snapshots newest first plus the
	// total count for pagination.
	ListSnapshots(ctx context.Context, limit, skip int) ([]domain.FleetSnapshot, int64, error)
	// LatestSnapshotID returns domain.ErrNoSnapshots when none exist.
	LatestSnapshotID(ctx context.Context) (string, error)
	GetPositions(ctx context.Context, snapshotID string) ([]domain.TruckPosition, error)
	// MarkDeleted persists the snapshot's soft-delete flag and removes it
	// from the chronological index.
	MarkDeleted(ctx context.Context, s *domain.FleetSnapshot) error
	DeletePositions(ctx context.Context, snapshotID string) error
}
