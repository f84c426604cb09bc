package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CyclesTotal counts collection cycles started.
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "airmon",
			Name:      "cycles_total",
			Help:      "Total number of collection cycles started",
		},
	)

	// CycleErrors counts cycles aborted by stage (fetch, write).
	CycleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airmon",
			Name:      "cycle_errors_total",
			Help:      "Total number of collection cycles aborted, by stage",
		},
		[]string{"stage"},
	)

	// RecordsFetched counts raw records pulled from the controller.
	RecordsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airmon",
			Name:      "records_fetched_total",
			Help:      "Total number of inventory records fetched from the controller",
		},
		[]string{"kind"},
	)

	// PointsWritten counts measurements handed to the time-series store.
	PointsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "airmon",
			Name:      "points_written_total",
			Help:      "Total number of measurements written to the time-series store",
		},
	)

	// CycleDuration observes end-to-end cycle latency.
	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "airmon",
			Name:      "cycle_duration_seconds",
			Help:      "End-to-end duration of collection cycles",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		prometheus.DefaultRegisterer.Register(CyclesTotal)
		prometheus.DefaultRegisterer.Register(CycleErrors)
		prometheus.DefaultRegisterer.Register(RecordsFetched)
		prometheus.DefaultRegisterer.Register(PointsWritten)
		prometheus.DefaultRegisterer.Register(CycleDuration)
	})
}
