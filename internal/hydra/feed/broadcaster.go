package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

const clientBuffer = 64

// Broadcaster serves published events to SSE clients. Slow clients drop
// events instead of holding back the publisher.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	metrics Metrics
	logger  *zap.Logger
}

func NewBroadcaster(metrics Metrics, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan []byte]struct{}),
		metrics: metrics,
		logger:  logger,
	}
}

// Publish fans ev out to every connected client.
func (b *Broadcaster) Publish(_ context.Context, ev model.BlockEvent) (err error) {
	defer func() {
		b.metrics.ObservePublished(err)
	}()

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- data:
		default:
			b.logger.Warn("sse client is lagging, event dropped", zap.String("event_id", ev.ID))
		}
	}
	return nil
}

// ServeHTTP streams events until the client disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := make(chan []byte, clientBuffer)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-ch:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Clients reports the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
