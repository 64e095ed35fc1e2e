package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerFetchWindowTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "fetch_window_total",
		Help:      "Count of attempts to fetch a window of blocks.",
	}, []string{"network", "status"})

	followerFetchWindowDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "fetch_window_duration_seconds",
		Help:      "Duration of fetching a window of blocks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerFetchWindowSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "fetch_window_size",
		Help:      "Number of blocks fetched per window.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"network"})

	followerNextHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "next_height",
		Help:      "Next block height the follower will process.",
	}, []string{"network"})

	followerTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "tip_height",
		Help:      "Latest block height reported by the source.",
	}, []string{"network"})
)

// Follower tracks metrics of the block following loop.
type Follower struct {
	network string
}

// NewFollower creates a Follower metrics collector.
func NewFollower(network string) *Follower {
	return &Follower{network: labelOrUnknown(network)}
}

func (m Follower) ObserveFetchWindow(err error, blocks int, started time.Time) {
	status := statusOf(err)
	followerFetchWindowTotal.WithLabelValues(m.network, status).Inc()
	followerFetchWindowDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	followerFetchWindowSize.WithLabelValues(m.network).Observe(float64(blocks))
}

func (m Follower) SetNextHeight(height uint64) {
	followerNextHeight.WithLabelValues(m.network).Set(float64(height))
}

func (m Follower) SetTipHeight(height uint64) {
	followerTipHeight.WithLabelValues(m.network).Set(float64(height))
}
