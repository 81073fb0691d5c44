package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GitSyncCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatescan_git_sync_count_total",
			Help: "Total number of Git sync operations",
		},
	)

	GitSyncFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatescan_git_sync_failed_total",
			Help: "Total number of failed Git sync operations",
		},
		[]string{"repository"},
	)

	GitSyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatescan_git_sync_duration_seconds",
			Help:    "Git sync duration in seconds",
			Buckets: []float64{0.1, 0.2, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"repository"},
	)

	ScanCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatescan_scan_count_total",
			Help: "Total number of scanner invocations",
		},
	)

	ScanFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatescan_scan_failed_total",
			Help: "Total number of failed scanner invocations",
		},
		[]string{"repository"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatescan_scan_duration_seconds",
			Help:    "Scanner invocation duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"repository"},
	)

	LastPassEnd = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatescan_last_pass_end_timestamp",
			Help: "Unix timestamp of when the last sync pass finished",
		},
	)
)

func SyncSucceeded(repository string, start time.Time) {
	GitSyncCount.Inc()
	GitSyncDuration.WithLabelValues(repository).Observe(time.Since(start).Seconds())
}

func SyncFailed(repository string) {
	GitSyncCount.Inc()
	GitSyncFailed.WithLabelValues(repository).Inc()
}

func ScanSucceeded(repository string, start time.Time) {
	ScanCount.Inc()
	ScanDuration.WithLabelValues(repository).Observe(time.Since(start).Seconds())
}

func ScanFailure(repository string) {
	ScanCount.Inc()
	ScanFailed.WithLabelValues(repository).Inc()
}

func PassFinished() {
	LastPassEnd.SetToCurrentTime()
}
