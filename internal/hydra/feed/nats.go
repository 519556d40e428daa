package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

const (
	// DefaultSubject carries block events between the ingester and notifiers.
	DefaultSubject = "hydra.blocks"
	// DefaultQueue groups notifier instances so each event is handled once.
	DefaultQueue = "hydrawatch-notify"
)

// NATSPublisher publishes block events to NATS as JSON.
type NATSPublisher struct {
	conn    Conn
	subject string
	metrics Metrics
}

func NewPublisher(conn Conn, subject string, metrics Metrics) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject, metrics: metrics}
}

// Publish sends ev. NATS core publishing is fire-and-forget; the returned
// error only covers encoding and the local connection state.
func (p *NATSPublisher) Publish(_ context.Context, ev model.BlockEvent) (err error) {
	defer func() {
		p.metrics.ObservePublished(err)
	}()

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	if err = p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish event %s: %w", ev.ID, err)
	}
	return nil
}

// Consumer feeds events from a NATS queue subscription to a handler.
type Consumer struct {
	conn    Conn
	subject string
	queue   string
	handler Handler
	metrics Metrics
	logger  *zap.Logger
}

func NewConsumer(conn Conn, subject, queue string, handler Handler, metrics Metrics, logger *zap.Logger) *Consumer {
	if subject == "" {
		subject = DefaultSubject
	}
	if queue == "" {
		queue = DefaultQueue
	}
	return &Consumer{
		conn:    conn,
		subject: subject,
		queue:   queue,
		handler: handler,
		metrics: metrics,
		logger:  logger.With(zap.String("subject", subject)),
	}
}

// Run subscribes and blocks until ctx is done. The NATS client reconnects on
// its own.
func (c *Consumer) Run(ctx context.Context) error {
	sub, err := c.conn.QueueSubscribe(c.subject, c.queue, func(msg *nats.Msg) {
		c.receive(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.subject, err)
	}
	c.logger.Info("consuming block events")

	<-ctx.Done()
	if err := sub.Unsubscribe(); err != nil {
		c.logger.Debug("unsubscribe failed", zap.Error(err))
	}
	return ctx.Err()
}

func (c *Consumer) receive(ctx context.Context, data []byte) {
	err := dispatch(ctx, data, c.handler)
	c.metrics.ObserveReceived(err)
	if err != nil {
		c.logger.Warn("handle block event failed", zap.Error(err))
	}
}

func dispatch(ctx context.Context, data []byte, handler Handler) error {
	var ev model.BlockEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if err := handler(ctx, ev); err != nil {
		return fmt.Errorf("handle event %s: %w", ev.ID, err)
	}
	return nil
}
