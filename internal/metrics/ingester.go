package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "sync_total",
		Help:      "Count of ingester sync iterations.",
	}, []string{"network", "status"})

	ingesterSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "sync_duration_seconds",
		Help:      "Duration of an ingester sync iteration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterSyncHeights = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "sync_heights",
		Help:      "Number of heights processed per sync iteration.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterRetainedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "retained_transactions_total",
		Help:      "Count of transactions correlated with tracked addresses.",
	}, []string{"network"})

	ingesterForksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "forks_total",
		Help:      "Count of detected chain reorganisations.",
	}, []string{"network"})

	ingesterHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydrawatch",
		Subsystem: "ingester",
		Name:      "cursor_height",
		Help:      "Height of the last committed block.",
	}, []string{"network"})
)

// Ingester tracks metrics for the block ingester.
type Ingester struct {
	network string
}

// NewIngester constructs an Ingester collector.
func NewIngester(network string) *Ingester {
	return &Ingester{network: orUnknown(network)}
}

// ObserveSync records one sync iteration and how many heights it covered.
func (m Ingester) ObserveSync(err error, heights int, started time.Time) {
	status := statusOf(err)
	ingesterSyncTotal.WithLabelValues(m.network, status).Inc()
	ingesterSyncDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	ingesterSyncHeights.WithLabelValues(m.network).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m Ingester) ObserveProcessHeight(err error, height uint64, retained int, started time.Time) {
	ingesterProcessHeightDuration.WithLabelValues(m.network, statusOf(err)).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	ingesterRetainedTransactions.WithLabelValues(m.network).Add(float64(retained))
	ingesterHeight.WithLabelValues(m.network).Set(float64(height))
}

// ObserveFork counts a detected reorganisation.
func (m Ingester) ObserveFork() {
	ingesterForksTotal.WithLabelValues(m.network).Inc()
}
