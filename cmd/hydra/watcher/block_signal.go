package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/clock"
)

const hashblockTopic = "hashblock"

// startBlockSignal subscribes to the node's hashblock notifications. Every
// message coalesces into one pending wake-up for the ingester. A nil channel
// is returned when addr is empty.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub := zmq4.NewSub(ctx, zmq4.WithID(zmq4.SocketIdentity("hydrawatch")))
	if err := sub.Dial(addr); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("dial zmq %s: %w", addr, err)
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, hashblockTopic); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe zmq %s: %w", hashblockTopic, err)
	}
	logger.Info("subscribed to block signal", zap.String("addr", addr))

	notify := make(chan struct{}, 1)

	go func() {
		defer sub.Close()
		for {
			msg, err := sub.Recv()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				if clock.SleepWithContext(ctx, time.Second) != nil {
					return
				}
				continue
			}
			if len(msg.Frames) < 2 {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(msg.Frames)))
				continue
			}

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, nil
}
