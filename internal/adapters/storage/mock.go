package storage

import (
	"context"
	"flixtube/internal/core/domain"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockObjectStorage struct {
	mock.Mock
}

func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{}
}

func (m *MockObjectStorage) Stat(ctx context.Context, path string) (*domain.ObjectInfo, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObjectInfo), args.Error(1)
}

func (m *MockObjectStorage) Open(ctx context.Context, path string, byteRange *domain.ByteRange) (io.ReadCloser, error) {
	args := m.Called(ctx, path, byteRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
