package storage

import (
	"context"
	"flixtube/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockStorageResolver is a mock implementation of StorageResolver
type MockStorageResolver struct {
	mock.Mock
}

// NewMockStorageResolver creates a new MockStorageResolver
func NewMockStorageResolver() *MockStorageResolver {
	return &MockStorageResolver{}
}

func (m *MockStorageResolver) Resolve(ctx context.Context, path string, rangeHeader string) (*domain.StreamHandle, error) {
	args := m.Called(ctx, path, rangeHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreamHandle), args.Error(1)
}
