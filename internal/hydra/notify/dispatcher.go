package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/clock"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// Dispatcher delivers messages through one sink. Delivery problems never
// reach the caller; each outcome is archived and counted instead.
type Dispatcher struct {
	sink    Sink
	archive Archive
	limiter ratelimit.Limiter
	metrics DispatcherMetrics
	logger  *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewDispatcher paces sends with limiter. archive may be nil.
func NewDispatcher(sink Sink, archive Archive, limiter ratelimit.Limiter, metrics DispatcherMetrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		archive: archive,
		limiter: limiter,
		metrics: metrics,
		logger:  logger.With(zap.String("sink", sink.Name())),
		sleep:   clock.SleepWithContext,
		now:     time.Now,
	}
}

// Dispatch sends msg to every chat and returns one status per chat. record
// carries the event fields of the archived notification.
func (d *Dispatcher) Dispatch(ctx context.Context, record model.Notification, chats []int64, msg Message) []model.DeliveryStatus {
	statuses := make([]model.DeliveryStatus, 0, len(chats))
	for _, chat := range chats {
		status := d.send(ctx, chat, msg)
		statuses = append(statuses, status)

		if d.archive == nil {
			continue
		}
		rec := record
		rec.ChatID = chat
		rec.Sink = d.sink.Name()
		rec.Status = status
		rec.Text = msg.Text
		rec.CreatedAt = d.now().UTC()
		if err := d.archive.Add(ctx, rec); err != nil {
			d.logger.Warn("archive notification failed", zap.Int64("chat", chat), zap.Error(err))
		}
	}
	return statuses
}

func (d *Dispatcher) send(ctx context.Context, chat int64, msg Message) model.DeliveryStatus {
	start := time.Now()
	d.limiter.Take()

	err := d.sink.Send(ctx, chat, msg)
	var limited *RateLimitedError
	if errors.As(err, &limited) {
		d.logger.Warn("rate limited, retrying once",
			zap.Int64("chat", chat),
			zap.Duration("retry_after", limited.RetryAfter),
		)
		if err = d.sleep(ctx, limited.RetryAfter); err == nil {
			err = d.sink.Send(ctx, chat, msg)
		}
	}

	status, label := classify(err)
	d.metrics.ObserveSend(label, start)
	switch status {
	case model.DeliveryDelivered:
	case model.DeliveryForbidden:
		d.logger.Info("chat is unreachable", zap.Int64("chat", chat), zap.Error(err))
	default:
		d.logger.Warn("send notification failed", zap.Int64("chat", chat), zap.Error(err))
	}
	return status
}

func classify(err error) (model.DeliveryStatus, string) {
	var limited *RateLimitedError
	switch {
	case err == nil:
		return model.DeliveryDelivered, "success"
	case errors.As(err, &limited):
		return model.DeliveryRateLimited, "rate_limited"
	case errors.Is(err, ErrForbidden):
		return model.DeliveryForbidden, "forbidden"
	default:
		return model.DeliveryFailed, "error"
	}
}
