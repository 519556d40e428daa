package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "feed",
		Name:      "events_total",
		Help:      "Count of feed events received or published.",
	}, []string{"source", "direction", "status"})
	feedReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "feed",
		Name:      "reconnects_total",
		Help:      "Count of feed reconnect attempts.",
	}, []string{"source"})
)

// Feed tracks metrics for an event feed transport.
type Feed struct {
	source string
}

// NewFeed creates a Feed collector for source (sse, nats).
func NewFeed(source string) *Feed {
	return &Feed{source: orUnknown(source)}
}

// ObserveReceived records an inbound event; err is a decode or handler failure.
func (m Feed) ObserveReceived(err error) {
	feedEventsTotal.WithLabelValues(m.source, "in", statusOf(err)).Inc()
}

// ObservePublished records an outbound event.
func (m Feed) ObservePublished(err error) {
	feedEventsTotal.WithLabelValues(m.source, "out", statusOf(err)).Inc()
}

// ObserveReconnect counts a reconnect attempt.
func (m Feed) ObserveReconnect() {
	feedReconnectsTotal.WithLabelValues(m.source).Inc()
}
