package service

import (
	"context"
	"testing"
	"time"

	"fleet-tracker/internal/features/fleet/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const snapID = "snap-1"

func snapshotFixture() *domain.FleetSnapshot {
	return &domain.FleetSnapshot{
		ID:        snapID,
		Timestamp: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
	}
}

func positionsFixture() []domain.TruckPosition {
	return []domain.TruckPosition{
		{TruckNo: "KBZ 004D", CurrentCheckpoint: "unknown lay-by", CheckpointOrder: domain.UnresolvedOrder, Direction: domain.DirectionUnknown, FleetGroup: "TRANSIT FLEET", SnapshotID: snapID},
		{TruckNo: "KBZ 003C", CurrentCheckpoint: "KAMPALA", CheckpointOrder: 14, Resolved: true, Direction: domain.DirectionReturning, Status: "Offloaded", FleetGroup: "TRANSIT FLEET", SnapshotID: snapID},
		{TruckNo: "KBZ 002B", CurrentCheckpoint: "VOI", CheckpointOrder: 3, Resolved: true, Direction: domain.DirectionGoing, Status: "In transit", FleetGroup: "GENERAL", SnapshotID: snapID},
		{TruckNo: "KBZ 001A", CurrentCheckpoint: "MOMBASA PORT", CheckpointOrder: 1, Resolved: true, Direction: domain.DirectionGoing, Status: "Loaded", FleetGroup: "GENERAL", SnapshotID: snapID},
		{TruckNo: "KBZ 005E", CurrentCheckpoint: "MOMBASA PORT", CheckpointOrder: 1, Resolved: true, Direction: domain.DirectionReturning, Status: "Queueing", FleetGroup: "GENERAL", SnapshotID: snapID},
	}
}

func TestQueryService_ListSnapshots_StripsFleetGroups(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := NewQueryService(repo)
	ctx := context.Background()

	stored := []domain.FleetSnapshot{
		{ID: "a", FleetGroups: []domain.FleetGroup{{Name: "GENERAL"}}},
	}
	repo.On("ListSnapshots", ctx, 20, 0).Return(stored, int64(1), nil).Once()

	snapshots, total, err := svc.ListSnapshots(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, snapshots, 1)
	assert.Nil(t, snapshots[0].FleetGroups)
}

func TestQueryService_LatestSnapshot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("LatestSnapshotID", ctx).Return(snapID, nil).Once()
		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()

		snapshot, err := svc.LatestSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, snapID, snapshot.ID)
	})

	t.Run("NoneExist", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("LatestSnapshotID", ctx).Return("", domain.ErrNoSnapshots).Once()

		_, err := svc.LatestSnapshot(ctx)
		assert.ErrorIs(t, err, domain.ErrNoSnapshots)
	})
}

func TestQueryService_Positions(t *testing.T) {
	t.Run("DefaultsToLatestAndSorts", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("LatestSnapshotID", ctx).Return(snapID, nil).Once()
		repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

		positions, err := svc.Positions(ctx, domain.PositionFilter{})
		require.NoError(t, err)
		require.Len(t, positions, 5)

		// Sorted by checkpoint order then truck number; unresolved last.
		assert.Equal(t, "KBZ 001A", positions[0].TruckNo)
		assert.Equal(t, "KBZ 005E", positions[1].TruckNo)
		assert.Equal(t, "KBZ 002B", positions[2].TruckNo)
		assert.Equal(t, "KBZ 003C", positions[3].TruckNo)
		assert.Equal(t, "KBZ 004D", positions[4].TruckNo)
	})

	t.Run("CheckpointFilterIsCaseInsensitive", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
		repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

		positions, err := svc.Positions(ctx, domain.PositionFilter{
			SnapshotID: snapID,
			Checkpoint: "mombasa port",
		})
		require.NoError(t, err)
		assert.Len(t, positions, 2)
	})

	t.Run("DirectionAndSubstringFilters", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
		repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

		positions, err := svc.Positions(ctx, domain.PositionFilter{
			SnapshotID: snapID,
			Direction:  "going",
			FleetGroup: "gen",
			TruckNo:    "002",
		})
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, "KBZ 002B", positions[0].TruckNo)
	})

	t.Run("UnknownSnapshot", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, "missing").Return(nil, domain.ErrSnapshotNotFound).Once()

		_, err := svc.Positions(ctx, domain.PositionFilter{SnapshotID: "missing"})
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}

func TestQueryService_TrucksAtCheckpoint(t *testing.T) {
	t.Run("SplitsByDirection", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
		repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

		at, err := svc.TrucksAtCheckpoint(ctx, "Mombasa Port", snapID)
		require.NoError(t, err)
		assert.Equal(t, 2, at.Total)
		require.Len(t, at.Going, 1)
		require.Len(t, at.Returning, 1)
		assert.Equal(t, "KBZ 001A", at.Going[0].TruckNo)
		assert.Equal(t, "KBZ 005E", at.Returning[0].TruckNo)
	})

	t.Run("NameMatchingIsCaseInsensitive", func(t *testing.T) {
		for _, name := range []string{"KAMPALA", "kampala"} {
			repo := new(MockSnapshotRepository)
			svc := NewQueryService(repo)
			ctx := context.Background()

			repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
			repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

			at, err := svc.TrucksAtCheckpoint(ctx, name, snapID)
			require.NoError(t, err, "name %q", name)
			assert.Equal(t, 1, at.Total)
		}
	})

	t.Run("NoTrucks", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
		repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

		_, err := svc.TrucksAtCheckpoint(ctx, "ELDORET", snapID)
		assert.ErrorIs(t, err, domain.ErrNoTrucksAtCheckpoint)
	})
}

func TestQueryService_CopyableList(t *testing.T) {
	setup := func() *QueryServiceImpl {
		repo := new(MockSnapshotRepository)
		repo.On("GetSnapshot", mock.Anything, snapID).Return(snapshotFixture(), nil)
		repo.On("GetPositions", mock.Anything, snapID).Return(positionsFixture(), nil)
		return NewQueryService(repo)
	}
	ctx := context.Background()

	tests := []struct {
		name      string
		format    domain.ListFormat
		direction string
		want      string
	}{
		{"Comma", domain.ListFormatComma, "", "KBZ 001A, KBZ 005E"},
		{"Line", domain.ListFormatLine, "", "KBZ 001A\nKBZ 005E"},
		{"Array", domain.ListFormatArray, "", `["KBZ 001A","KBZ 005E"]`},
		{"Detailed", domain.ListFormatDetailed, "", "KBZ 001A (GOING, Loaded)\nKBZ 005E (RETURNING, Queueing)"},
		{"DirectionFiltered", domain.ListFormatComma, "RETURNING", "KBZ 005E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setup()
			got, err := svc.CopyableList(ctx, "MOMBASA PORT", snapID, tt.direction, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("InvalidFormat", func(t *testing.T) {
		svc := setup()
		_, err := svc.CopyableList(ctx, "MOMBASA PORT", snapID, "", domain.ListFormat("xml"))
		assert.ErrorIs(t, err, domain.ErrInvalidListFormat)
	})
}

func TestQueryService_DeleteSnapshot(t *testing.T) {
	t.Run("SoftDeleteAndCascade", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
		repo.On("MarkDeleted", ctx, mock.MatchedBy(func(s *domain.FleetSnapshot) bool {
			return s.DeletedAt != nil
		})).Return(nil).Once()
		repo.On("DeletePositions", ctx, snapID).Return(nil).Once()

		err := svc.DeleteSnapshot(ctx, snapID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockSnapshotRepository)
		svc := NewQueryService(repo)
		ctx := context.Background()

		repo.On("GetSnapshot", ctx, "missing").Return(nil, domain.ErrSnapshotNotFound).Once()

		err := svc.DeleteSnapshot(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}

func TestQueryService_CheckpointDistribution(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := NewQueryService(repo)
	ctx := context.Background()

	repo.On("GetSnapshot", ctx, snapID).Return(snapshotFixture(), nil).Once()
	repo.On("GetPositions", ctx, snapID).Return(positionsFixture(), nil).Once()

	entries, err := svc.CheckpointDistribution(ctx, snapID)
	require.NoError(t, err)

	// Unresolved positions are excluded; entries follow route order.
	require.Len(t, entries, 3)
	assert.Equal(t, "MOMBASA PORT", entries[0].Checkpoint)
	assert.Equal(t, 2, entries[0].Total)
	assert.Equal(t, 1, entries[0].Going)
	assert.Equal(t, 1, entries[0].Returning)
	assert.Equal(t, "VOI", entries[1].Checkpoint)
	assert.Equal(t, "KAMPALA", entries[2].Checkpoint)

	total := 0
	for _, e := range entries {
		total += e.Total
	}
	assert.Equal(t, 4, total)
}
