package service

import (
	"context"
	"fmt"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/parser"
	"fleet-tracker/internal/features/fleet/ports"
	"fleet-tracker/internal/features/fleet/resolver"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestServiceImpl implements ports.IngestService: the synchronous
// parse → resolve → aggregate → persist pipeline, one snapshot per upload.
type IngestServiceImpl struct {
	parser   *parser.Parser
	resolver *resolver.Resolver
	repo     ports.SnapshotRepository
}

// NewIngestService creates a new IngestServiceImpl.
func NewIngestService(p *parser.Parser, r *resolver.Resolver, repo ports.SnapshotRepository) *IngestServiceImpl {
	return &IngestServiceImpl{
		parser:   p,
		resolver: r,
		repo:     repo,
	}
}

// Ingest processes one uploaded report end to end.
func (s *IngestServiceImpl) Ingest(ctx context.Context, meta domain.UploadMeta, data []byte) (*domain.FleetSnapshot, error) {
	parsed, err := s.parser.Parse(data, meta.Extension)
	if err != nil {
		return nil, fmt.Errorf("service: failed to parse report: %w", err)
	}

	reportDate := meta.ReportDate
	if reportDate.IsZero() {
		now := time.Now().UTC()
		reportDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	positions, unresolved, err := s.resolver.ResolveAll(ctx, parsed, reportDate)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve positions: %w", err)
	}

	snapshot := aggregate(meta, parsed, positions, unresolved, reportDate)
	snapshot.ID = uuid.NewString()
	snapshot.Timestamp = time.Now()
	for i := range positions {
		positions[i].SnapshotID = snapshot.ID
	}
	for gi := range snapshot.FleetGroups {
		for ti := range snapshot.FleetGroups[gi].Trucks {
			snapshot.FleetGroups[gi].Trucks[ti].SnapshotID = snapshot.ID
		}
	}

	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("service: failed to save snapshot: %w", err)
	}

	// The snapshot's counters are committed and authoritative. A failed
	// position write is a bounded defect for reconciliation, not a reason
	// to fail the upload.
	if err := s.repo.SavePositions(ctx, snapshot.ID, positions); err != nil {
		logger.Get().Error("Position bulk write failed after snapshot commit",
			zap.String("snapshot_id", snapshot.ID),
			zap.Int("positions", len(positions)),
			zap.Error(err),
		)
		snapshot.Warnings = append(snapshot.Warnings,
			"position rows could not be stored; snapshot counters remain authoritative")
	}

	logger.Get().Info("Report ingested",
		zap.String("snapshot_id", snapshot.ID),
		zap.String("file", meta.FileName),
		zap.String("report_type", string(snapshot.ReportType)),
		zap.Int("total_trucks", snapshot.TotalTrucks),
		zap.Int("unresolved", snapshot.UnresolvedTrucks),
		zap.Int("skipped_rows", snapshot.SkippedRows),
	)
	return snapshot, nil
}

// aggregate derives the snapshot's summary counters and both read models:
// the nested fleet groups for compact display and the flat position list the
// repository stores separately.
func aggregate(meta domain.UploadMeta, parsed *parser.ParseResult, positions []domain.TruckPosition, unresolved int, reportDate time.Time) *domain.FleetSnapshot {
	snapshot := &domain.FleetSnapshot{
		ReportDate:             reportDate,
		ReportType:             parsed.ReportType,
		UploadedBy:             meta.UploadedBy,
		FileName:               meta.FileName,
		FileSize:               meta.FileSize,
		TotalTrucks:            len(positions),
		UnresolvedTrucks:       unresolved,
		SkippedRows:            parsed.SkippedRows,
		Warnings:               append([]string(nil), parsed.Warnings...),
		CheckpointDistribution: make(map[string]int),
	}

	groupIndex := make(map[string]int)
	for _, pos := range positions {
		switch pos.Direction {
		case domain.DirectionGoing:
			snapshot.GoingTrucks++
		case domain.DirectionReturning:
			snapshot.ReturningTrucks++
		default:
			snapshot.UnknownTrucks++
		}

		// Unresolved positions count toward totals but stay out of the
		// checkpoint distribution.
		if pos.Resolved {
			snapshot.CheckpointDistribution[pos.CurrentCheckpoint]++
		}

		gi, ok := groupIndex[pos.FleetGroup]
		if !ok {
			gi = len(snapshot.FleetGroups)
			groupIndex[pos.FleetGroup] = gi
			snapshot.FleetGroups = append(snapshot.FleetGroups, domain.FleetGroup{Name: pos.FleetGroup})
		}
		snapshot.FleetGroups[gi].Trucks = append(snapshot.FleetGroups[gi].Trucks, pos)
	}

	if unresolved > 0 {
		snapshot.Warnings = append(snapshot.Warnings,
			fmt.Sprintf("%d truck location(s) did not match any checkpoint", unresolved))
	}
	return snapshot
}
