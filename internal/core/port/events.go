package port

import (
	"context"
	"flixtube/internal/core/domain"
)

// MessageHandler is an interface to define message handling.
// The returned disposition is translated by the broker adapter into ack / nak / term.
type MessageHandler interface {
	HandleMessage(ctx context.Context, delivery domain.Delivery) domain.Disposition
}

// Subscription is a running consumer bound to one exchange
type Subscription interface {
	// Queue returns the broker generated (or configured durable) queue name.
	Queue() string
	Stop()
}

// EventBus is an interface to define a broker adapter (nats, rabbitmq, ...)
type EventBus interface {
	DeclareExchange(ctx context.Context, exchange domain.Exchange) error
	Publish(ctx context.Context, exchange domain.Exchange, payload []byte) error
	Consume(ctx context.Context, exchange domain.Exchange, handler MessageHandler) (Subscription, error)
	Closed() <-chan struct{}
	Close() error
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, exchange domain.Exchange, payload []byte) error
}
