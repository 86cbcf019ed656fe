package upstream

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type MockStorageForwarder struct {
	mock.Mock
}

func NewMockStorageForwarder() *MockStorageForwarder {
	return &MockStorageForwarder{}
}

func (m *MockStorageForwarder) Forward(ctx context.Context, inbound *http.Request, path string) (*http.Response, error) {
	args := m.Called(ctx, inbound, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
