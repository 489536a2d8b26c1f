// Package metrics exposes Prometheus counters for the ventradar service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InsightsSynced counts insight records pulled from the backend.
	InsightsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ventradar",
		Name:      "insights_synced_total",
		Help:      "Insight records synced from the analysis backend.",
	})

	// SyncErrors counts failed sync attempts.
	SyncErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ventradar",
		Name:      "sync_errors_total",
		Help:      "Failed backend sync attempts.",
	})

	// AlertsSent counts high-score notifications broadcast to notifiers.
	AlertsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ventradar",
		Name:      "alerts_sent_total",
		Help:      "High-score insight alerts broadcast.",
	})

	// HTTPRequests counts API requests by path, method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ventradar",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"path", "method", "code"})

	// HTTPDuration observes API request latency by path.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ventradar",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})
)
