package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleet-tracker/internal/core/logger"
	checkpointdomain "fleet-tracker/internal/features/checkpoints/domain"
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/ports"

	"go.uber.org/zap"
)

// QueryServiceImpl implements ports.QueryService over persisted snapshots.
type QueryServiceImpl struct {
	repo ports.SnapshotRepository
}

// NewQueryService creates a new QueryServiceImpl.
func NewQueryService(repo ports.SnapshotRepository) *QueryServiceImpl {
	return &QueryServiceImpl{repo: repo}
}

// ListSnapshots returns non-deleted snapshots newest first, without the heavy
// nested fleet-groups payload.
func (s *QueryServiceImpl) ListSnapshots(ctx context.Context, limit, skip int) ([]domain.FleetSnapshot, int64, error) {
	snapshots, total, err := s.repo.ListSnapshots(ctx, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list snapshots: %w", err)
	}
	for i := range snapshots {
		snapshots[i].FleetGroups = nil
	}
	return snapshots, total, nil
}

// LatestSnapshot returns the most recent non-deleted snapshot.
func (s *QueryServiceImpl) LatestSnapshot(ctx context.Context) (*domain.FleetSnapshot, error) {
	id, err := s.repo.LatestSnapshotID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetSnapshot(ctx, id)
}

// resolveSnapshotID defaults an empty id to the latest snapshot, verifying
// the snapshot exists either way.
func (s *QueryServiceImpl) resolveSnapshotID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return s.repo.LatestSnapshotID(ctx)
	}
	if _, err := s.repo.GetSnapshot(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// Positions returns a snapshot's positions filtered and sorted by checkpoint
// order, then truck number.
func (s *QueryServiceImpl) Positions(ctx context.Context, filter domain.PositionFilter) ([]domain.TruckPosition, error) {
	snapshotID, err := s.resolveSnapshotID(ctx, filter.SnapshotID)
	if err != nil {
		return nil, err
	}

	positions, err := s.repo.GetPositions(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load positions: %w", err)
	}

	filtered := positions[:0:0]
	for _, pos := range positions {
		if filter.Checkpoint != "" && !strings.EqualFold(pos.CurrentCheckpoint, filter.Checkpoint) {
			continue
		}
		if filter.Direction != "" && !strings.EqualFold(string(pos.Direction), filter.Direction) {
			continue
		}
		if filter.FleetGroup != "" &&
			!strings.Contains(strings.ToUpper(pos.FleetGroup), strings.ToUpper(filter.FleetGroup)) {
			continue
		}
		if filter.TruckNo != "" &&
			!strings.Contains(strings.ToUpper(pos.TruckNo), strings.ToUpper(filter.TruckNo)) {
			continue
		}
		filtered = append(filtered, pos)
	}

	sortPositions(filtered)
	return filtered, nil
}

// TrucksAtCheckpoint returns the trucks at one checkpoint split by direction.
// Matching tolerates case and punctuation differences in the requested name.
func (s *QueryServiceImpl) TrucksAtCheckpoint(ctx context.Context, name, snapshotID string) (*domain.CheckpointTrucks, error) {
	snapshotID, err := s.resolveSnapshotID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	positions, err := s.repo.GetPositions(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load positions: %w", err)
	}

	want := checkpointdomain.Normalize(name)
	result := &domain.CheckpointTrucks{SnapshotID: snapshotID}
	for _, pos := range positions {
		if checkpointdomain.Normalize(pos.CurrentCheckpoint) != want {
			continue
		}
		if result.Checkpoint == "" {
			result.Checkpoint = pos.CurrentCheckpoint
		}
		result.Total++
		switch pos.Direction {
		case domain.DirectionGoing:
			result.Going = append(result.Going, pos)
		case domain.DirectionReturning:
			result.Returning = append(result.Returning, pos)
		default:
			result.Unknown = append(result.Unknown, pos)
		}
	}
	if result.Total == 0 {
		return nil, domain.ErrNoTrucksAtCheckpoint
	}

	sortPositions(result.Going)
	sortPositions(result.Returning)
	sortPositions(result.Unknown)
	return result, nil
}

// CopyableList renders the trucks at a checkpoint as paste-ready text for
// downstream paperwork.
func (s *QueryServiceImpl) CopyableList(ctx context.Context, name, snapshotID, direction string, format domain.ListFormat) (string, error) {
	switch format {
	case domain.ListFormatComma, domain.ListFormatLine, domain.ListFormatArray, domain.ListFormatDetailed:
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidListFormat, format)
	}

	at, err := s.TrucksAtCheckpoint(ctx, name, snapshotID)
	if err != nil {
		return "", err
	}

	trucks := make([]domain.TruckPosition, 0, at.Total)
	trucks = append(trucks, at.Going...)
	trucks = append(trucks, at.Returning...)
	trucks = append(trucks, at.Unknown...)
	sortPositions(trucks)

	if direction != "" {
		kept := trucks[:0]
		for _, pos := range trucks {
			if strings.EqualFold(string(pos.Direction), direction) {
				kept = append(kept, pos)
			}
		}
		trucks = kept
	}

	switch format {
	case domain.ListFormatComma:
		return strings.Join(truckNumbers(trucks), ", "), nil
	case domain.ListFormatLine:
		return strings.Join(truckNumbers(trucks), "\n"), nil
	case domain.ListFormatArray:
		data, err := json.Marshal(truckNumbers(trucks))
		if err != nil {
			return "", fmt.Errorf("service: failed to render truck list: %w", err)
		}
		return string(data), nil
	default: // detailed
		lines := make([]string, 0, len(trucks))
		for _, pos := range trucks {
			lines = append(lines, fmt.Sprintf("%s (%s, %s)", pos.TruckNo, pos.Direction, pos.Status))
		}
		return strings.Join(lines, "\n"), nil
	}
}

// DeleteSnapshot soft-deletes a snapshot and bulk-removes its positions.
// Readers filter on the deleted flag, so a failure between the two steps can
// only leave orphaned position rows behind, never a visible half-deleted
// snapshot.
func (s *QueryServiceImpl) DeleteSnapshot(ctx context.Context, id string) error {
	snapshot, err := s.repo.GetSnapshot(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	snapshot.DeletedAt = &now
	if err := s.repo.MarkDeleted(ctx, snapshot); err != nil {
		return fmt.Errorf("service: failed to delete snapshot: %w", err)
	}

	if err := s.repo.DeletePositions(ctx, id); err != nil {
		// Orphaned rows are recoverable; the snapshot is already hidden.
		logger.Get().Error("Failed to delete snapshot positions",
			zap.String("snapshot_id", id),
			zap.Error(err),
		)
	}
	return nil
}

// CheckpointDistribution aggregates a snapshot's resolved positions per
// checkpoint with direction sub-counts, in route order.
func (s *QueryServiceImpl) CheckpointDistribution(ctx context.Context, snapshotID string) ([]domain.DistributionEntry, error) {
	snapshotID, err := s.resolveSnapshotID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	positions, err := s.repo.GetPositions(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load positions: %w", err)
	}

	index := make(map[string]int)
	entries := make([]domain.DistributionEntry, 0)
	for _, pos := range positions {
		if !pos.Resolved {
			continue
		}
		i, ok := index[pos.CurrentCheckpoint]
		if !ok {
			i = len(entries)
			index[pos.CurrentCheckpoint] = i
			entries = append(entries, domain.DistributionEntry{
				Checkpoint: pos.CurrentCheckpoint,
				Order:      pos.CheckpointOrder,
			})
		}
		entries[i].Total++
		switch pos.Direction {
		case domain.DirectionGoing:
			entries[i].Going++
		case domain.DirectionReturning:
			entries[i].Returning++
		default:
			entries[i].Unknown++
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Order < entries[j].Order })
	return entries, nil
}

func sortPositions(positions []domain.TruckPosition) {
	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].CheckpointOrder != positions[j].CheckpointOrder {
			return positions[i].CheckpointOrder < positions[j].CheckpointOrder
		}
		return positions[i].TruckNo < positions[j].TruckNo
	})
}

func truckNumbers(positions []domain.TruckPosition) []string {
	nums := make([]string, 0, len(positions))
	for _, pos := range positions {
		nums = append(nums, pos.TruckNo)
	}
	return nums
}
