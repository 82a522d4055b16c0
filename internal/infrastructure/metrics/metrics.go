package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "jan"
	subsystem = "search_tool"
)

var (
	// RequestsTotal counts HTTP requests served
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	// ToolCallsTotal counts search tool invocations
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tool_calls_total",
			Help:      "Total search tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tool_duration_seconds",
			Help:      "Search tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool_name"},
	)

	// ToolResultsTotal counts result records returned to callers
	ToolResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tool_results_total",
			Help:      "Total result records returned by search tools",
		},
		[]string{"tool_name"},
	)

	// UpstreamRequestsTotal counts requests sent to Serper, one per tool call
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_requests_total",
			Help:      "Total requests sent to the upstream search provider",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_latency_seconds",
			Help:      "Upstream search provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		ToolCallsTotal,
		ToolDuration,
		ToolResultsTotal,
		UpstreamRequestsTotal,
		UpstreamLatency,
	)
}

// RecordRequest records a served HTTP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records a tool invocation and its duration
func RecordToolCall(toolName, status string, durationSec float64, resultCount int) {
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
	ToolDuration.WithLabelValues(toolName).Observe(durationSec)
	if resultCount > 0 {
		ToolResultsTotal.WithLabelValues(toolName).Add(float64(resultCount))
	}
}

// RecordUpstreamRequest records one upstream round trip
func RecordUpstreamRequest(endpoint, status string, durationSec float64) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamLatency.WithLabelValues(endpoint).Observe(durationSec)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
