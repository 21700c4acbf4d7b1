package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	adminRequestsTotal     *prometheus.CounterVec
	adminLatencySeconds    *prometheus.HistogramVec
	adminErrorsTotal       *prometheus.CounterVec
	activityWritesTotal    *prometheus.CounterVec
	recentActivityRequests *prometheus.CounterVec
	recentActivityLatency  prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the admin API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		activityWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_log_writes_total",
			Help: "Activity log records written, labelled by category and outcome.",
		}, []string{"type", "result"})

		recentActivityRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recent_activity_requests_total",
			Help: "Recent-activity feed reads, labelled by cache outcome.",
		}, []string{"result"})

		recentActivityLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recent_activity_latency_seconds",
			Help:    "Latency distribution for the recent-activity feed.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			activityWritesTotal,
			recentActivityRequests,
			recentActivityLatency,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// ActivityWrites exposes the counter for activity log writes.
func ActivityWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return activityWritesTotal
}

// RecentActivityRequests exposes the cache hit/miss counter for the feed.
func RecentActivityRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return recentActivityRequests
}

// RecentActivityLatency exposes the latency histogram for the feed.
func RecentActivityLatency() prometheus.Histogram {
	RegisterMetrics()
	return recentActivityLatency
}
