// Package metrics defines Prometheus metrics for pathtrace.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathtrace_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathtrace_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathtrace_errors_total",
			Help: "Total errors by code",
		},
		[]string{"code"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathtrace_searches_total",
			Help: "Completed searches by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	TraceLength = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathtrace_trace_steps",
			Help:    "Number of trace steps recorded per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"algorithm"},
	)

	MapNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathtrace_map_nodes",
			Help: "Nodes in the loaded map",
		},
	)

	MapEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathtrace_map_edges",
			Help: "Undirected edges in the loaded map",
		},
	)

	MapReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathtrace_map_reloads_total",
			Help: "Map reload attempts by result",
		},
		[]string{"result"},
	)

	ActivePlaybacks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathtrace_active_playbacks",
			Help: "Open WebSocket playback sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchesTotal, TraceLength,
		MapNodes, MapEdges, MapReloadsTotal,
		ActivePlaybacks,
	)
}

// Outcome labels a search result for SearchesTotal.
func Outcome(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}
