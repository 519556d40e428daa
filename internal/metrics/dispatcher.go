package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatcherSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "dispatcher",
		Name:      "sends_total",
		Help:      "Count of notification sends by outcome.",
	}, []string{"sink", "status"})
	dispatcherSendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydrawatch",
		Subsystem: "dispatcher",
		Name:      "send_duration_seconds",
		Help:      "Duration of notification sends including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"sink", "status"})
	dispatcherEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "dispatcher",
		Name:      "events_total",
		Help:      "Count of block events handled by the notification engine.",
	}, []string{"event", "status"})
)

// Dispatcher tracks metrics for notification delivery.
type Dispatcher struct {
	sink string
}

// NewDispatcher creates a Dispatcher collector labelled with the sink name.
func NewDispatcher(sink string) *Dispatcher {
	return &Dispatcher{sink: orUnknown(sink)}
}

// ObserveSend records a send outcome. status is one of success, rate_limited,
// forbidden or error.
func (m Dispatcher) ObserveSend(status string, started time.Time) {
	dispatcherSendsTotal.WithLabelValues(m.sink, status).Inc()
	dispatcherSendDuration.WithLabelValues(m.sink, status).Observe(time.Since(started).Seconds())
}

// ObserveEvent records a handled event. Duplicates are reported with status
// "duplicate".
func (m Dispatcher) ObserveEvent(event, status string) {
	dispatcherEventsTotal.WithLabelValues(orUnknown(event), status).Inc()
}
