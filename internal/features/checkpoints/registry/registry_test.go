package registry

import (
	"context"
	"errors"
	"testing"

	"fleet-tracker/internal/features/checkpoints/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckpointRepository is a mock implementation of ports.CheckpointRepository
type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) Save(ctx context.Context, cp *domain.Checkpoint) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCheckpointRepository) Get(ctx context.Context, name string) (*domain.Checkpoint, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkpoint), args.Error(1)
}

func (m *MockCheckpointRepository) List(ctx context.Context) ([]domain.Checkpoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Checkpoint), args.Error(1)
}

func (m *MockCheckpointRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCheckpointRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckpointRepository) Seed(ctx context.Context, cps []domain.Checkpoint) error {
	args := m.Called(ctx, cps)
	return args.Error(0)
}

func storedCheckpoints() []domain.Checkpoint {
	deleted := domain.Checkpoint{Name: "OLD DEPOT", Order: 2, IsActive: true}
	now := deleted.CreatedAt
	deleted.DeletedAt = &now

	return []domain.Checkpoint{
		{Name: "MOMBASA PORT", Order: 1, IsActive: true, IsMajor: true},
		deleted,
		{Name: "NAIROBI", Order: 5, IsActive: true},
		{Name: "DISABLED YARD", Order: 6, IsActive: false},
	}
}

func TestRegistry_LoadActive_FiltersAndCaches(t *testing.T) {
	mockRepo := new(MockCheckpointRepository)
	reg := New(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(storedCheckpoints(), nil).Once()

	cps, err := reg.LoadActive(ctx)
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.Equal(t, "MOMBASA PORT", cps[0].Name)
	assert.Equal(t, "NAIROBI", cps[1].Name)

	// Second load is served from cache; List is not called again.
	_, err = reg.LoadActive(ctx)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "List", 1)
}

func TestRegistry_Invalidate_ForcesReload(t *testing.T) {
	mockRepo := new(MockCheckpointRepository)
	reg := New(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(storedCheckpoints(), nil).Twice()

	_, err := reg.LoadActive(ctx)
	require.NoError(t, err)

	reg.Invalidate()

	_, err = reg.LoadActive(ctx)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "List", 2)
}

func TestRegistry_Reload_Error(t *testing.T) {
	mockRepo := new(MockCheckpointRepository)
	reg := New(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(nil, errors.New("redis down")).Once()

	err := reg.Reload(ctx)
	assert.Error(t, err)
}

func TestRegistry_Resolve(t *testing.T) {
	mockRepo := new(MockCheckpointRepository)
	reg := New(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(storedCheckpoints(), nil).Once()

	res, err := reg.Resolve(ctx, "mombasa port")
	require.NoError(t, err)
	require.NotNil(t, res.Checkpoint)
	assert.Equal(t, domain.MatchExact, res.Tier)
	assert.Equal(t, "MOMBASA PORT", res.Checkpoint.Name)

	// Soft-deleted checkpoints never resolve.
	res, err = reg.Resolve(ctx, "OLD DEPOT")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchNone, res.Tier)
}

func TestRegistry_LoadActive_ReturnsCopy(t *testing.T) {
	mockRepo := new(MockCheckpointRepository)
	reg := New(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(storedCheckpoints(), nil).Once()

	first, err := reg.LoadActive(ctx)
	require.NoError(t, err)
	first[0].Name = "MUTATED"

	second, err := reg.LoadActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MOMBASA PORT", second[0].Name)
}
