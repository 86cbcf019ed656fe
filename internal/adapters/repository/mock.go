package repository

import (
	"context"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockVideoRepository struct {
	mock.Mock
}

func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{}
}

func (m *MockVideoRepository) Insert(ctx context.Context, video domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context) ([]domain.Video, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Video), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Insert(ctx context.Context, view domain.ViewRecord) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.ViewRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ViewRecord), args.Error(1)
}

func (m *MockHistoryRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockViewCountRepository struct {
	mock.Mock
}

func NewMockViewCountRepository() *MockViewCountRepository {
	return &MockViewCountRepository{}
}

func (m *MockViewCountRepository) Increment(ctx context.Context, videoPath string) error {
	args := m.Called(ctx, videoPath)
	return args.Error(0)
}

func (m *MockViewCountRepository) ListPopular(ctx context.Context, limit int) ([]domain.PopularVideo, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PopularVideo), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	historyRepo   *MockHistoryRepository
	viewCountRepo *MockViewCountRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		historyRepo:   &MockHistoryRepository{},
		viewCountRepo: &MockViewCountRepository{},
	}
}

func (m *MockUnitOfWork) HistoryRepo() port.HistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) ViewCountRepo() port.ViewCountRepository {
	return m.viewCountRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetHistoryRepoMock() *MockHistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) GetViewCountRepoMock() *MockViewCountRepository {
	return m.viewCountRepo
}
