package streaming

import (
	"context"
	"flixtube/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockStreamingService is a mock implementation of StreamingService
type MockStreamingService struct {
	mock.Mock
}

// NewMockStreamingService creates a new MockStreamingService
func NewMockStreamingService() *MockStreamingService {
	return &MockStreamingService{}
}

func (m *MockStreamingService) ResolveVideo(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockStreamingService) RecordView(ctx context.Context, video domain.Video) {
	m.Called(ctx, video)
}

// MockViewRecorder is a mock implementation of ViewRecorder
type MockViewRecorder struct {
	mock.Mock
}

// NewMockViewRecorder creates a new MockViewRecorder
func NewMockViewRecorder() *MockViewRecorder {
	return &MockViewRecorder{}
}

func (m *MockViewRecorder) RecordView(ctx context.Context, event domain.ViewEvent) {
	m.Called(ctx, event)
}
