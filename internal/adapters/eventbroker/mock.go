package eventbroker

import (
	"context"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockEventBus is a mock implementation of port.EventBus
type MockEventBus struct {
	mock.Mock
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{}
}

func (m *MockEventBus) DeclareExchange(ctx context.Context, exchange domain.Exchange) error {
	args := m.Called(ctx, exchange)
	return args.Error(0)
}

func (m *MockEventBus) Publish(ctx context.Context, exchange domain.Exchange, payload []byte) error {
	args := m.Called(ctx, exchange, payload)
	return args.Error(0)
}

func (m *MockEventBus) Consume(ctx context.Context, exchange domain.Exchange, handler port.MessageHandler) (port.Subscription, error) {
	args := m.Called(ctx, exchange, handler)
	sub, _ := args.Get(0).(port.Subscription)
	return sub, args.Error(1)
}

func (m *MockEventBus) Closed() <-chan struct{} {
	args := m.Called()
	return args.Get(0).(<-chan struct{})
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}
