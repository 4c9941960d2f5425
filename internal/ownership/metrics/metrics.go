package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ownership traversal engine.
type Metrics struct {
	// Completed traversal runs
	Runs prometheus.Counter

	// Node-visit outcomes by terminal kind
	TerminalEvents *prometheus.CounterVec

	// Nodes visited per run
	NodesPerRun prometheus.Histogram

	// Wall-clock duration of full traversal runs
	RunDuration prometheus.Histogram
}

// New creates a Metrics instance with all traversal metrics registered.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ownergraph_traversal_runs_total",
			Help: "Total completed ownership traversal runs",
		}),

		TerminalEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ownergraph_traversal_terminal_events_total",
			Help: "Terminal branch outcomes by kind",
		}, []string{"kind"}),

		NodesPerRun: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ownergraph_traversal_nodes_per_run",
			Help:    "Company nodes visited per traversal run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200},
		}),

		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ownergraph_traversal_run_duration_seconds",
			Help:    "Wall-clock duration of full traversal runs",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementRuns records one completed run.
func (m *Metrics) IncrementRuns() {
	if m != nil {
		m.Runs.Inc()
	}
}

// IncrementTerminal records a terminal branch outcome.
func (m *Metrics) IncrementTerminal(kind string) {
	if m != nil {
		m.TerminalEvents.WithLabelValues(kind).Inc()
	}
}

// ObserveRun records the node count and duration of a completed run.
func (m *Metrics) ObserveRun(nodes int, d time.Duration) {
	if m != nil {
		m.NodesPerRun.Observe(float64(nodes))
		m.RunDuration.Observe(d.Seconds())
	}
}
