// Package metrics defines the Prometheus metrics of the issue tracker API.
// All collectors register with the default registry through promauto and are
// served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "issue_tracker"

// ── Issue metrics ─────────────────────────────────────────────────────────────

// IssueOperationsTotal counts registry operations requested over HTTP.
// Labels:
//   - op: "add", "edit", "delete" or "refresh"
//   - result: "ok", "forbidden", "not_found" or "error"
var IssueOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issue_operations_total",
		Help:      "Total number of issue registry operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// IssuesTracked is the size of the in-memory working set after the last
// operation that changed it.
var IssuesTracked = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "issues_tracked",
		Help:      "Number of issues currently held by the registry.",
	},
)

// IssuesRateLimitedTotal counts issue creations rejected by the daily limit.
var IssuesRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_rate_limited_total",
		Help:      "Total number of issue creations rejected by the per-user daily limit.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "ok", "invalid", "duplicate", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by result.",
	},
	[]string{"action", "result"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern, e.g. "/v1/issues/:id"
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
