package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydrawatch",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of relational store operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydrawatch",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of relational store operations.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for PostgreSQL repository operations.
type PostgresRepository struct{}

// NewPostgresRepository creates a PostgresRepository metrics collector.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Observe records duration and status of a repository operation.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	postgresRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
