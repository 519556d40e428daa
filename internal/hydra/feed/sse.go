package feed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	defaultReconnectDelay = 15 * time.Second
	maxEventSize          = 16 << 20
)

var errStreamClosed = errors.New("event stream closed")

// SSEConsumer reads block events from a text/event-stream endpoint and
// reconnects after a fixed delay whenever the connection drops.
type SSEConsumer struct {
	url     string
	client  *http.Client
	handler Handler
	metrics Metrics
	logger  *zap.Logger
	delay   time.Duration
}

// NewSSEConsumer builds a consumer. A zero delay means 15 seconds.
func NewSSEConsumer(url string, client *http.Client, handler Handler, metrics Metrics, logger *zap.Logger, delay time.Duration) *SSEConsumer {
	if client == nil {
		client = http.DefaultClient
	}
	if delay <= 0 {
		delay = defaultReconnectDelay
	}
	return &SSEConsumer{
		url:     url,
		client:  client,
		handler: handler,
		metrics: metrics,
		logger:  logger.With(zap.String("url", url)),
		delay:   delay,
	}
}

// Run consumes until ctx is done. Connection errors never end it.
func (c *SSEConsumer) Run(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewConstantBackOff(c.delay), ctx)
	notify := func(err error, next time.Duration) {
		c.metrics.ObserveReconnect()
		c.logger.Debug("event stream failed, reconnecting", zap.Duration("in", next), zap.Error(err))
	}

	err := backoff.RetryNotify(func() error {
		err := c.stream(ctx)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}, policy, notify)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (c *SSEConsumer) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connect: unexpected status %s", resp.Status)
	}
	c.logger.Debug("event stream connected")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64<<10), maxEventSize)

	var data bytes.Buffer
	for scanner.Scan() {
		line := scanner.Bytes()
		switch {
		case len(line) == 0:
			if data.Len() > 0 {
				c.receive(ctx, data.Bytes())
				data.Reset()
			}
		case bytes.HasPrefix(line, []byte("data:")):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.Write(bytes.TrimPrefix(bytes.TrimPrefix(line, []byte("data:")), []byte(" ")))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return errStreamClosed
}

func (c *SSEConsumer) receive(ctx context.Context, data []byte) {
	err := dispatch(ctx, data, c.handler)
	c.metrics.ObserveReceived(err)
	if err != nil {
		c.logger.Warn("handle block event failed", zap.Error(err))
	}
}
