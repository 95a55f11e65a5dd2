package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Upstream API metrics
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showshelf_upstream_requests_total",
			Help: "Total number of requests sent to the TVMaze API.",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showshelf_upstream_request_duration_seconds",
			Help:    "Latency of TVMaze API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// UI metrics
var (
	UIActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showshelf_ui_actions_total",
			Help: "Total number of view controller actions by kind and result.",
		},
		[]string{"action", "result"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "showshelf_active_sessions",
			Help: "Number of browser sessions currently held in memory.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		UIActionsTotal,
		ActiveSessions,
	)
}
