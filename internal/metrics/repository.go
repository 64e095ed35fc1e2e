package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of changelog repository operations.",
	}, []string{"sink", "operation", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of changelog repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"sink", "operation", "status"})
)

// Repository tracks metrics for changelog sink operations.
type Repository struct {
	sink string
}

// NewRepository creates a Repository metrics collector labeled with the sink kind.
func NewRepository(sink string) *Repository {
	return &Repository{sink: labelOrUnknown(sink)}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(m.sink, operation, status).Inc()
	repositoryRequestDuration.WithLabelValues(m.sink, operation, status).Observe(time.Since(started).Seconds())
}
