// Package feed moves block events from the ingester to the notification
// engine: over NATS, over server-sent events, or in process.
package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// Local hands events to a handler running in the same process.
type Local struct {
	events chan model.BlockEvent
	logger *zap.Logger
}

// NewLocal builds a feed buffering up to size events.
func NewLocal(size int, logger *zap.Logger) *Local {
	return &Local{events: make(chan model.BlockEvent, size), logger: logger}
}

// Publish queues ev, blocking while the buffer is full.
func (l *Local) Publish(ctx context.Context, ev model.BlockEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.events <- ev:
		return nil
	}
}

// Run delivers queued events to handler in order until ctx is done.
func (l *Local) Run(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			if err := handler(ctx, ev); err != nil {
				l.logger.Warn("handle block event failed", zap.String("event_id", ev.ID), zap.Error(err))
			}
		}
	}
}

// Fanout publishes every event to all publishers and returns the first error.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev model.BlockEvent) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
