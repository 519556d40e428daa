// Package batcher buffers items and hands them to a writer in batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

var ErrStopped = errors.New("batcher stopped")

// Config controls when a batch is written.
type Config struct {
	// Size flushes as soon as this many items are buffered.
	Size int
	// Interval flushes whatever is buffered at least this often.
	Interval time.Duration
	// FlushesPerSecond caps the write rate; zero disables the cap.
	FlushesPerSecond int
	// StopTimeout bounds the final flush performed by Stop.
	StopTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Size <= 0 {
		c.Size = 500
	}
	if c.Interval <= 0 {
		c.Interval = 5 * time.Second
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = 10 * time.Second
	}
	return c
}

// Batcher buffers items and flushes them by size or interval.
type Batcher[T any] struct {
	flush  func(context.Context, []T) error
	items  chan T
	cfg    Config
	rl     ratelimit.Limiter
	logger *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func New[T any](cfg Config, flush func(context.Context, []T) error, logger *zap.Logger) *Batcher[T] {
	cfg = cfg.withDefaults()
	rl := ratelimit.NewUnlimited()
	if cfg.FlushesPerSecond > 0 {
		rl = ratelimit.New(cfg.FlushesPerSecond)
	}
	return &Batcher[T]{
		flush:  flush,
		items:  make(chan T, cfg.Size*2),
		cfg:    cfg,
		rl:     rl,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start runs the flushing loop until ctx is done or Stop is called.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes buffered items and waits for the loop to exit. Safe to call
// more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues item. It blocks while the buffer is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.Size)
	write := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		batch := make([]T, len(buf))
		copy(batch, buf)
		buf = buf[:0]

		b.rl.Take()
		if err := b.flush(ctx, batch); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(batch)), zap.Error(err))
			return
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
	}

	// The final flush outlives the caller's context.
	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
			default:
				ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.StopTimeout)
				write(ctx)
				cancel()
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return
		case <-b.stop:
			drain()
			return
		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.cfg.Size {
				write(ctx)
			}
		case <-ticker.C:
			write(ctx)
		}
	}
}
