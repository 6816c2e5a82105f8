package service

import (
	"context"
	"errors"
	"testing"
	"time"

	checkpointdomain "fleet-tracker/internal/features/checkpoints/domain"
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/parser"
	"fleet-tracker/internal/features/fleet/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSnapshotRepository is a mock implementation of ports.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, s *domain.FleetSnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotRepository) SavePositions(ctx context.Context, snapshotID string, positions []domain.TruckPosition) error {
	args := m.Called(ctx, snapshotID, positions)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetSnapshot(ctx context.Context, id string) (*domain.FleetSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FleetSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshots(ctx context.Context, limit, skip int) ([]domain.FleetSnapshot, int64, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.FleetSnapshot), args.Get(1).(int64), args.Error(2)
}

func (m *MockSnapshotRepository) LatestSnapshotID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSnapshotRepository) GetPositions(ctx context.Context, snapshotID string) ([]domain.TruckPosition, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TruckPosition), args.Error(1)
}

func (m *MockSnapshotRepository) MarkDeleted(ctx context.Context, s *domain.FleetSnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotRepository) DeletePositions(ctx context.Context, snapshotID string) error {
	args := m.Called(ctx, snapshotID)
	return args.Error(0)
}

// stubRegistry resolves against a fixed corridor.
type stubRegistry struct {
	checkpoints []checkpointdomain.Checkpoint
}

func (s *stubRegistry) LoadActive(ctx context.Context) ([]checkpointdomain.Checkpoint, error) {
	return s.checkpoints, nil
}

func (s *stubRegistry) Reload(ctx context.Context) error { return nil }

func (s *stubRegistry) Invalidate() {}

func (s *stubRegistry) Resolve(ctx context.Context, raw string) (checkpointdomain.MatchResult, error) {
	return checkpointdomain.Match(raw, s.checkpoints), nil
}

func newIngestService(repo *MockSnapshotRepository) *IngestServiceImpl {
	reg := &stubRegistry{checkpoints: []checkpointdomain.Checkpoint{
		{Name: "MOMBASA PORT", Order: 1, IsMajor: true, AlternativeNames: []string{"MSA"}},
		{Name: "VOI", Order: 3},
		{Name: "MALABA", Order: 10, IsMajor: true},
		{Name: "KAMPALA", Order: 14, IsMajor: true},
	}}
	res := resolver.New(reg, domain.NewKeywordClassifier(domain.DefaultKeywordRules()))
	return NewIngestService(parser.New(""), res, repo)
}

const ingestCSV = `TRUCK NO,TRAILER NO,LOCATION,STATUS,DEPARTURE DATE,REMARKS
KBZ 001A,ZC 100,Mombasa Port,Loaded,2024-03-01,
KBZ 002B,ZC 200,Voi,In transit,2024-03-02,
TRANSIT FLEET,,,,,
KBZ 003C,ZC 300,Kampala,Offloaded,2024-02-25,returning empty
KBZ 004D,ZC 400,unknown lay-by,Parked,,
`

func uploadMeta() domain.UploadMeta {
	return domain.UploadMeta{
		FileName:   "fleet_report.csv",
		Extension:  "csv",
		FileSize:   1024,
		UploadedBy: "ops@example.com",
		ReportDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestIngestService_Ingest(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)
	ctx := context.Background()

	repo.On("SaveSnapshot", ctx, mock.AnythingOfType("*domain.FleetSnapshot")).Return(nil).Once()
	repo.On("SavePositions", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.TruckPosition")).Return(nil).Once()

	snapshot, err := svc.Ingest(ctx, uploadMeta(), []byte(ingestCSV))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.NotEmpty(t, snapshot.ID)

	assert.Equal(t, 4, snapshot.TotalTrucks)
	assert.Equal(t, 2, snapshot.GoingTrucks)
	assert.Equal(t, 1, snapshot.ReturningTrucks)
	assert.Equal(t, 1, snapshot.UnknownTrucks)
	assert.Equal(t, 1, snapshot.UnresolvedTrucks)

	// Direction counts always add up to the total.
	assert.Equal(t, snapshot.TotalTrucks,
		snapshot.GoingTrucks+snapshot.ReturningTrucks+snapshot.UnknownTrucks)

	// The distribution covers exactly the resolved positions.
	sum := 0
	for _, n := range snapshot.CheckpointDistribution {
		sum += n
	}
	assert.Equal(t, snapshot.TotalTrucks-snapshot.UnresolvedTrucks, sum)
	assert.Equal(t, 1, snapshot.CheckpointDistribution["MOMBASA PORT"])
	assert.Equal(t, 1, snapshot.CheckpointDistribution["VOI"])
	assert.Equal(t, 1, snapshot.CheckpointDistribution["KAMPALA"])

	// Fleet groups kept in first-seen order.
	require.Len(t, snapshot.FleetGroups, 2)
	assert.Equal(t, "GENERAL", snapshot.FleetGroups[0].Name)
	assert.Equal(t, "TRANSIT FLEET", snapshot.FleetGroups[1].Name)
	assert.Len(t, snapshot.FleetGroups[0].Trucks, 2)
	assert.Len(t, snapshot.FleetGroups[1].Trucks, 2)

	// One unresolved location surfaces as a warning.
	require.NotEmpty(t, snapshot.Warnings)
	assert.Contains(t, snapshot.Warnings[0], "did not match any checkpoint")

	repo.AssertExpectations(t)
}

func TestIngestService_Ingest_PositionsCarrySnapshotID(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)
	ctx := context.Background()

	var saved []domain.TruckPosition
	repo.On("SaveSnapshot", ctx, mock.Anything).Return(nil).Once()
	repo.On("SavePositions", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).([]domain.TruckPosition)
		}).Return(nil).Once()

	snapshot, err := svc.Ingest(ctx, uploadMeta(), []byte(ingestCSV))
	require.NoError(t, err)

	require.Len(t, saved, 4)
	for _, pos := range saved {
		assert.Equal(t, snapshot.ID, pos.SnapshotID)
	}
	for _, group := range snapshot.FleetGroups {
		for _, pos := range group.Trucks {
			assert.Equal(t, snapshot.ID, pos.SnapshotID)
		}
	}
}

func TestIngestService_Ingest_EmptyReportSucceedsWithWarning(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)
	ctx := context.Background()

	repo.On("SaveSnapshot", ctx, mock.Anything).Return(nil).Once()
	repo.On("SavePositions", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	snapshot, err := svc.Ingest(ctx, uploadMeta(), []byte("OTHER,COLUMNS\nx,y\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.TotalTrucks)
	assert.NotEmpty(t, snapshot.Warnings)
}

func TestIngestService_Ingest_PositionWriteFailureIsNonFatal(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)
	ctx := context.Background()

	repo.On("SaveSnapshot", ctx, mock.Anything).Return(nil).Once()
	repo.On("SavePositions", ctx, mock.Anything, mock.Anything).
		Return(errors.New("redis write failed")).Once()

	snapshot, err := svc.Ingest(ctx, uploadMeta(), []byte(ingestCSV))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Contains(t, snapshot.Warnings[len(snapshot.Warnings)-1], "counters remain authoritative")
}

func TestIngestService_Ingest_SnapshotWriteFailureIsFatal(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)
	ctx := context.Background()

	repo.On("SaveSnapshot", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	_, err := svc.Ingest(ctx, uploadMeta(), []byte(ingestCSV))
	assert.Error(t, err)
}

func TestIngestService_Ingest_UnsupportedType(t *testing.T) {
	repo := new(MockSnapshotRepository)
	svc := newIngestService(repo)

	meta := uploadMeta()
	meta.Extension = "pdf"

	_, err := svc.Ingest(context.Background(), meta, []byte("x"))
	assert.ErrorIs(t, err, parser.ErrUnsupportedFileType)
}
