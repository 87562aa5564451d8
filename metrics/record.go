package metrics

import (
	"errors"
	"time"

	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
	"github.com/prometheus/client_golang/prometheus"
)

// RecordBuild records the outcome of one build. t may be nil when err is set.
func (r *Registry) RecordBuild(kind state.TopologyKind, t *topology.Topology, err error, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.BuildsTotal.WithLabelValues(string(kind), status(err)).Inc()
	r.BuildDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())

	var unsat *state.ConstraintUnsatisfiableError
	if errors.As(err, &unsat) {
		r.UnsatisfiedBudget.Set(float64(unsat.HubBudget))
		r.HubCoverage.Set(unsat.BestCoverage)
	}
	if t == nil {
		return
	}

	r.NodesPlacedTotal.WithLabelValues(string(kind)).Add(float64(t.Stats.Placed))
	r.PrunedNodesTotal.WithLabelValues(string(kind)).Add(float64(t.Stats.Pruned))
	r.LinksTotal.WithLabelValues("accepted").Add(float64(t.Stats.LinksAccepted))
	r.LinksTotal.WithLabelValues("dropped").Add(float64(t.Stats.LinksDropped))
	r.HubAttemptsTotal.Add(float64(t.Stats.HubAttempts))

	r.TopologyNodes.WithLabelValues(string(topology.Server)).Set(float64(len(t.Servers())))
	r.TopologyNodes.WithLabelValues(string(topology.Hub)).Set(float64(len(t.Hubs())))
	r.TopologyEdges.Set(float64(len(t.Edges)))
	if kind == state.Star {
		r.TopologyHubs.Set(float64(t.Stats.Hubs))
		r.HubCoverage.Set(t.Stats.Coverage)
		r.UnsatisfiedBudget.Set(0)
	}
	for _, d := range t.Degree() {
		r.NodeDegree.Observe(float64(d))
	}
}

// WriteTextfile writes every metric in the text exposition format, for the node exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return prometheus.WriteToTextfile(path, r.registry)
}
