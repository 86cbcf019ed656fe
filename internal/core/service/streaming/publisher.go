package streaming

import (
	"context"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"flixtube/internal/metrics"
	"log/slog"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// ViewPublisher publishes view events out of band.
// Events wait in a bounded queue drained by a single worker that retries failed publishes;
// when the queue is full the event is dropped.
type ViewPublisher struct {
	publisher port.EventPublisher
	executor  failsafe.Executor[any]
	queue     chan domain.ViewEvent
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewViewPublisher creates a ViewPublisher and starts its worker
func NewViewPublisher(publisher port.EventPublisher, cfg config.StreamConfig, logger *slog.Logger) *ViewPublisher {
	size := cfg.PublishBuffer
	if size <= 0 {
		size = 1
	}
	retries := cfg.PublishRetries
	if retries < 0 {
		retries = 0
	}
	backoff := cfg.PublishBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	retry := retrypolicy.NewBuilder[any]().
		WithMaxRetries(retries).
		WithBackoff(backoff, 10*backoff).
		WithJitterFactor(0.1).
		OnRetry(func(e failsafe.ExecutionEvent[any]) {
			logger.Warn("retrying view event publication", "attempt", e.Attempts(), "error", e.LastError())
		}).
		Build()

	ctx, cancel := context.WithCancel(context.Background())
	p := &ViewPublisher{
		publisher: publisher,
		executor:  failsafe.With[any](retry),
		queue:     make(chan domain.ViewEvent, size),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go p.run()
	return p
}

// RecordView enqueues event without blocking
func (p *ViewPublisher) RecordView(_ context.Context, event domain.ViewEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop(event, "publisher closed")
		return
	}
	select {
	case p.queue <- event:
	default:
		p.drop(event, "queue full")
	}
}

func (p *ViewPublisher) drop(event domain.ViewEvent, reason string) {
	metrics.RecordEventDropped(string(domain.ExchangeViewed))
	p.logger.Warn("view event dropped", "path", event.VideoPath, "reason", reason)
}

func (p *ViewPublisher) run() {
	defer close(p.done)
	for event := range p.queue {
		p.publish(event)
	}
}

func (p *ViewPublisher) publish(event domain.ViewEvent) {
	payload, err := domain.EncodeEvent(event)
	if err != nil {
		p.logger.Error("could not encode view event", "path", event.VideoPath, "error", err)
		return
	}

	err = p.executor.WithContext(p.ctx).Run(func() error {
		return p.publisher.Publish(p.ctx, domain.ExchangeViewed, payload)
	})
	if err != nil {
		metrics.RecordEventPublishFailure(string(domain.ExchangeViewed))
		p.logger.Error("failed to publish view event", "path", event.VideoPath, "error", err)
		return
	}
	p.logger.Debug("view event published", "path", event.VideoPath)
}

// Close stops accepting events and waits for the queue to drain.
// When ctx expires first, pending retries are abandoned.
func (p *ViewPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return ctx.Err()
	}
}
