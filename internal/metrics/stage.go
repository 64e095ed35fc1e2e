// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blockmeta"

var (
	stageBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "blocks_total",
		Help:      "Count of processed blocks.",
	}, []string{"network", "status"})

	stageBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "block_duration_seconds",
		Help:      "Duration of processing a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	stageRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "change_records_total",
		Help:      "Count of change records handed to the sink.",
	}, []string{"network"})
)

// Stage tracks per-block pipeline metrics.
type Stage struct {
	network string
}

// NewStage creates a Stage metrics collector.
func NewStage(network string) *Stage {
	return &Stage{network: labelOrUnknown(network)}
}

// ObserveBlock records the outcome of one block and the number of records it produced.
func (m Stage) ObserveBlock(err error, records int, started time.Time) {
	status := statusOf(err)
	stageBlocksTotal.WithLabelValues(m.network, status).Inc()
	stageBlockDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if err == nil {
		stageRecordsTotal.WithLabelValues(m.network).Add(float64(records))
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
