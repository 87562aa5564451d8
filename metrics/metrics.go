// Package metrics exposes synthesis statistics as prometheus metrics. The CLI writes them as a node exporter textfile.
package metrics

import (
	"errors"
	"sync"

	"github.com/encodeous/topogen/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every synthesis metric
type Registry struct {
	BuildsTotal       *prometheus.CounterVec
	NodesPlacedTotal  *prometheus.CounterVec
	LinksTotal        *prometheus.CounterVec
	PrunedNodesTotal  *prometheus.CounterVec
	HubAttemptsTotal  prometheus.Counter
	BuildDuration     *prometheus.HistogramVec
	TopologyNodes     *prometheus.GaugeVec
	TopologyEdges     prometheus.Gauge
	TopologyHubs      prometheus.Gauge
	HubCoverage       prometheus.Gauge
	NodeDegree        prometheus.Histogram
	UnsatisfiedBudget prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initBuildMetrics()
	r.initTopologyMetrics()
	return r
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topogen_builds_total",
			Help: "Total number of topology builds",
		},
		[]string{"topology", "status"}, // ok, empty, unsatisfiable, invalid
	)

	r.NodesPlacedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topogen_nodes_placed_total",
			Help: "Total number of nodes placed before reduction",
		},
		[]string{"topology"},
	)

	r.LinksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topogen_links_total",
			Help: "Sampled links by outcome",
		},
		[]string{"outcome"}, // accepted, dropped
	)

	r.PrunedNodesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topogen_pruned_nodes_total",
			Help: "Total number of nodes removed by connectivity reduction",
		},
		[]string{"topology"},
	)

	r.HubAttemptsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "topogen_hub_attempts_total",
			Help: "Total number of hub counts evaluated by the clusterer",
		},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topogen_build_duration_seconds",
			Help:    "Topology build latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"topology"},
	)
}

func (r *Registry) initTopologyMetrics() {
	r.TopologyNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "topogen_topology_nodes",
			Help: "Nodes in the last synthesized topology",
		},
		[]string{"type"}, // server, hub
	)

	r.TopologyEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "topogen_topology_edges",
			Help: "Edges in the last synthesized topology",
		},
	)

	r.TopologyHubs = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "topogen_topology_hubs",
			Help: "Hubs placed in the last star topology",
		},
	)

	r.HubCoverage = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "topogen_hub_coverage_percent",
			Help: "Share of nodes within hub range in the last star topology",
		},
	)

	r.NodeDegree = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "topogen_node_degree",
			Help:    "Distribution of node degrees across synthesized topologies",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 16, 64, 256},
		},
	)

	r.UnsatisfiedBudget = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "topogen_unsatisfied_hub_budget",
			Help: "Hub budget of the last star build that missed its coverage target, 0 if none",
		},
	)
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, state.ErrEmptyTopology):
		return "empty"
	case errors.Is(err, state.ErrConstraintUnsatisfiable):
		return "unsatisfiable"
	case errors.Is(err, state.ErrInvalidTopology), errors.Is(err, state.ErrInvalidConfig):
		return "invalid"
	default:
		return "error"
	}
}
