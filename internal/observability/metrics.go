package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "open_meteo_tools"

// Metrics holds the Prometheus collectors for upstream calls, tool calls and alerts.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint, outcome={success,error,circuit_open}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint

	ToolCalls *prometheus.CounterVec // labels: tool, outcome={success,bad_request,error}

	AlertsGenerated     *prometheus.CounterVec // labels: type, severity
	WatchedActiveAlerts *prometheus.GaugeVec   // labels: location
	WatchRuns           prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Open-Meteo requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Open-Meteo request duration in seconds, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_generated_total",
			Help:      "Weather alerts produced by type and severity.",
		}, []string{"type", "severity"}),
		WatchedActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watched_active_alerts",
			Help:      "Alerts active at the last watch run per watched location.",
		}, []string{"location"}),
		WatchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_runs_total",
			Help:      "Completed alert watch runs.",
		}),
	}
}

// NewMetrics creates all metrics and registers them with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ToolCalls,
		m.AlertsGenerated,
		m.WatchedActiveAlerts,
		m.WatchRuns,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
