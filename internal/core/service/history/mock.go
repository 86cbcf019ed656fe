package history

import (
	"context"
	"flixtube/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockHistoryService is a mock implementation of HistoryService
type MockHistoryService struct {
	mock.Mock
}

// NewMockHistoryService creates a new MockHistoryService
func NewMockHistoryService() *MockHistoryService {
	return &MockHistoryService{}
}

func (m *MockHistoryService) RecentViews(ctx context.Context, limit int) ([]domain.ViewRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ViewRecord), args.Error(1)
}

func (m *MockHistoryService) PopularVideos(ctx context.Context, limit int) ([]domain.PopularVideo, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PopularVideo), args.Error(1)
}

func (m *MockHistoryService) PruneHistory(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
