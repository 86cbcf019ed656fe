package nats

import (
	"context"
	"errors"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"flixtube/internal/metrics"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Bus is a struct to interact with nats jetstream as a fanout event bus.
// Each exchange is a stream with a single subject of the same name, each consumer
// instance gets its own consumer on that stream, so every instance sees every message.
type Bus struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.BrokerConfig

	closed    chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	subs []*subscription
	wg   sync.WaitGroup
}

// NewBus connects to the broker.
// Reconnection is disabled: losing the connection closes Closed() and the process is expected to exit.
func NewBus(cfg config.BrokerConfig, logger *slog.Logger) (*Bus, error) {
	b := &Bus{
		logger: logger,
		config: cfg,
		closed: make(chan struct{}),
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.NoReconnect(),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", "error", err)
			}
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			b.closeOnce.Do(func() { close(b.closed) })
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to NATS: %w", domain.ErrUnavailable, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	b.conn = conn
	b.js = js
	return b, nil
}

// DeclareExchange creates the stream backing exchange. Declaring twice is a no-op.
func (b *Bus) DeclareExchange(ctx context.Context, exchange domain.Exchange) error {
	if _, err := b.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       streamName(exchange),
		Subjects:   []string{string(exchange)},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     b.config.StreamMaxAge,
		Duplicates: 2 * time.Minute,
	}); err != nil {
		return fmt.Errorf("%w: failed to declare exchange %s: %w", domain.ErrUnavailable, exchange, err)
	}

	if b.config.DeadLetter {
		if _, err := b.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:      streamName(exchange) + "-dead",
			Subjects:  []string{deadLetterSubject(exchange)},
			Storage:   jetstream.FileStorage,
			Retention: jetstream.LimitsPolicy,
		}); err != nil {
			return fmt.Errorf("%w: failed to declare dead-letter stream for %s: %w", domain.ErrUnavailable, exchange, err)
		}
	}
	return nil
}

// Publish sends payload to exchange without waiting for a broker acknowledgement
func (b *Bus) Publish(ctx context.Context, exchange domain.Exchange, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := nats.NewMsg(string(exchange))
	msg.Data = payload
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())

	if err := b.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("%w: failed to publish to %s: %w", domain.ErrUnavailable, exchange, err)
	}
	metrics.RecordEventPublished(string(exchange))
	return nil
}

// Consume binds a new queue to exchange and hands its messages to handler one at a time
func (b *Bus) Consume(ctx context.Context, exchange domain.Exchange, handler port.MessageHandler) (port.Subscription, error) {
	consumerCfg := jetstream.ConsumerConfig{
		FilterSubject:     string(exchange),
		AckPolicy:         jetstream.AckExplicitPolicy,
		AckWait:           b.config.AckWait,
		MaxDeliver:        b.config.MaxDeliver,
		MaxAckPending:     1,
		DeliverPolicy:     jetstream.DeliverNewPolicy,
		InactiveThreshold: b.config.InactiveThreshold,
	}
	if b.config.DurableQueue != "" {
		consumerCfg.Durable = fmt.Sprintf("%s-%s", b.config.DurableQueue, streamName(exchange))
		consumerCfg.DeliverPolicy = jetstream.DeliverAllPolicy
		consumerCfg.InactiveThreshold = 0
	}

	cons, err := b.js.CreateOrUpdateConsumer(ctx, streamName(exchange), consumerCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to bind queue to %s: %w", domain.ErrUnavailable, exchange, err)
	}

	iter, err := cons.Messages(jetstream.PullMaxMessages(1))
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming %s: %w", exchange, err)
	}

	sub := &subscription{
		queue: cons.CachedInfo().Name,
		iter:  iter,
	}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	stopOnCancel := context.AfterFunc(ctx, sub.Stop)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer stopOnCancel()
		b.logger.Info("NATS subscription started", "exchange", exchange, "queue", sub.queue)
		for {
			msg, err := iter.Next()
			if err != nil {
				if errors.Is(err, jetstream.ErrMsgIteratorClosed) || ctx.Err() != nil {
					b.logger.Info("NATS subscription stopped", "exchange", exchange, "queue", sub.queue)
					return
				}
				b.logger.Error("failed to receive message", "exchange", exchange, "error", err)
				return
			}
			b.settle(ctx, exchange, msg, handler)
		}
	}()

	return sub, nil
}

// settle runs handler on msg and translates the disposition into the broker primitive
func (b *Bus) settle(ctx context.Context, exchange domain.Exchange, msg jetstream.Msg, handler port.MessageHandler) {
	delivery := domain.Delivery{
		MessageID: msg.Headers().Get(nats.MsgIdHdr),
		Exchange:  exchange,
		Data:      msg.Data(),
		Attempt:   1,
	}
	if md, err := msg.Metadata(); err == nil {
		delivery.Attempt = md.NumDelivered
		delivery.PublishedAt = md.Timestamp
		if delivery.MessageID == "" {
			delivery.MessageID = fmt.Sprintf("%s-%d", md.Stream, md.Sequence.Stream)
		}
	}

	disposition := handler.HandleMessage(ctx, delivery)
	exhausted := b.config.MaxDeliver > 0 && delivery.Attempt >= uint64(b.config.MaxDeliver)

	var err error
	switch {
	case disposition.Ack:
		err = msg.Ack()
	case disposition.Requeue && !exhausted:
		b.logger.Warn("message rejected, requeueing",
			"exchange", exchange, "message_id", delivery.MessageID, "attempt", delivery.Attempt, "error", disposition.Reason)
		err = msg.NakWithDelay(redeliveryDelay(delivery.Attempt))
	default:
		b.logger.Warn("message rejected, dead-lettering",
			"exchange", exchange, "message_id", delivery.MessageID, "attempt", delivery.Attempt, "error", disposition.Reason)
		b.deadLetter(exchange, delivery)
		err = msg.Term()
	}
	if err != nil {
		b.logger.Error("failed to settle message", "exchange", exchange, "disposition", disposition.String(), "error", err)
	}
	metrics.RecordMessageConsumed(string(exchange), disposition.String())
}

func (b *Bus) deadLetter(exchange domain.Exchange, delivery domain.Delivery) {
	if !b.config.DeadLetter {
		return
	}
	msg := nats.NewMsg(deadLetterSubject(exchange))
	msg.Data = delivery.Data
	msg.Header.Set(nats.MsgIdHdr, delivery.MessageID)
	if err := b.conn.PublishMsg(msg); err != nil {
		b.logger.Error("failed to dead-letter message", "exchange", exchange, "message_id", delivery.MessageID, "error", err)
		return
	}
	metrics.RecordMessageDeadLettered(string(exchange))
}

// Closed is closed once the broker connection is gone
func (b *Bus) Closed() <-chan struct{} {
	return b.closed
}

// Close graceful shutdown
func (b *Bus) Close() error {
	b.mu.Lock()
	for _, sub := range b.subs {
		sub.Stop()
	}
	b.mu.Unlock()

	b.wg.Wait()

	if b.conn != nil && !b.conn.IsClosed() {
		if err := b.conn.Drain(); err != nil {
			b.conn.Close()
			return fmt.Errorf("failed to drain NATS connection: %w", err)
		}
	}
	return nil
}

type subscription struct {
	queue    string
	iter     jetstream.MessagesContext
	stopOnce sync.Once
}

func (s *subscription) Queue() string {
	return s.queue
}

func (s *subscription) Stop() {
	s.stopOnce.Do(s.iter.Stop)
}

func streamName(exchange domain.Exchange) string {
	return string(exchange)
}

func deadLetterSubject(exchange domain.Exchange) string {
	return string(exchange) + ".dead"
}

func redeliveryDelay(attempt uint64) time.Duration {
	delay := time.Duration(attempt) * 250 * time.Millisecond
	if delay > 5*time.Second {
		return 5 * time.Second
	}
	return delay
}
