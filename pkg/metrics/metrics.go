// Package metrics defines the Prometheus metrics exported by the solver and
// the HTTP service. Metrics are registered on the default registry via promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/azybler/mssp/pkg/sssp"
)

var (
	// QueriesTotal counts single-source queries completed.
	QueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mssp_queries_total",
		Help: "Total number of single-source shortest-path queries run",
	})

	// QueryDuration measures the time of one single-source query.
	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mssp_query_duration_seconds",
		Help:    "Duration of single-source shortest-path queries in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// FrontierPops counts frontier pops, labeled settled or stale.
	FrontierPops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mssp_frontier_pops_total",
			Help: "Frontier entries popped, by outcome",
		},
		[]string{"outcome"},
	)

	// Relaxations counts edges that improved a tentative distance.
	Relaxations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mssp_relaxations_total",
		Help: "Edge relaxations that improved a tentative distance",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mssp_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures server response time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mssp_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// GraphSize reports the size of the loaded graph.
	GraphSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mssp_graph_size",
			Help: "Number of nodes and edges in the loaded graph",
		},
		[]string{"kind"},
	)
)

// Recorder feeds solver statistics into the package metrics.
// It implements sssp.Observer.
type Recorder struct{}

var _ sssp.Observer = Recorder{}

// ObserveQuery records one completed query.
func (Recorder) ObserveQuery(st sssp.QueryStats, elapsed time.Duration) {
	QueriesTotal.Inc()
	QueryDuration.Observe(elapsed.Seconds())
	FrontierPops.WithLabelValues("settled").Add(float64(st.Settled))
	FrontierPops.WithLabelValues("stale").Add(float64(st.Stale))
	Relaxations.Add(float64(st.Relaxed))
}

// SetGraphSize publishes node and edge counts.
func SetGraphSize(nodes, edges uint32) {
	GraphSize.WithLabelValues("nodes").Set(float64(nodes))
	GraphSize.WithLabelValues("edges").Set(float64(edges))
}
