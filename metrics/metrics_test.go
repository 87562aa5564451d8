package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func starTopology() *topology.Topology {
	return &topology.Topology{
		Kind: state.Star,
		Nodes: []topology.NodeInfo{
			{Id: 1, Type: topology.Server},
			{Id: 2, Type: topology.Server},
			{Id: 3, Type: topology.Hub},
		},
		Edges: []topology.Edge{{A: 1, B: 3}, {A: 2, B: 3}},
		Stats: topology.Stats{
			Placed:        4,
			Pruned:        1,
			LinksAccepted: 3,
			LinksDropped:  1,
			HubAttempts:   2,
			Hubs:          1,
			Coverage:      97.5,
		},
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.NotNil(t, r.BuildsTotal)
	assert.NotNil(t, r.TopologyNodes)
	assert.NotNil(t, r.registry)
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordBuild_Success(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild(state.Star, starTopology(), nil, 20*time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, r.BuildsTotal.WithLabelValues("star", "ok")))
	assert.Equal(t, 4.0, counterValue(t, r.NodesPlacedTotal.WithLabelValues("star")))
	assert.Equal(t, 1.0, counterValue(t, r.PrunedNodesTotal.WithLabelValues("star")))
	assert.Equal(t, 3.0, counterValue(t, r.LinksTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, counterValue(t, r.LinksTotal.WithLabelValues("dropped")))
	assert.Equal(t, 2.0, counterValue(t, r.HubAttemptsTotal))
	assert.Equal(t, 2.0, gaugeValue(t, r.TopologyNodes.WithLabelValues("server")))
	assert.Equal(t, 1.0, gaugeValue(t, r.TopologyNodes.WithLabelValues("hub")))
	assert.Equal(t, 2.0, gaugeValue(t, r.TopologyEdges))
	assert.Equal(t, 97.5, gaugeValue(t, r.HubCoverage))

	var m dto.Metric
	require.NoError(t, r.NodeDegree.Write(&m))
	assert.Equal(t, uint64(3), m.GetHistogram().GetSampleCount())
	assert.Equal(t, 4.0, m.GetHistogram().GetSampleSum())
}

func TestRecordBuild_Failures(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild(state.Mesh, nil, fmt.Errorf("wrap: %w", state.ErrEmptyTopology), time.Millisecond)
	r.RecordBuild(state.Star, nil, &state.ConstraintUnsatisfiableError{HubBudget: 5, BestCoverage: 40}, time.Millisecond)
	r.RecordBuild("ring", nil, state.ErrInvalidTopology, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, r.BuildsTotal.WithLabelValues("mesh", "empty")))
	assert.Equal(t, 1.0, counterValue(t, r.BuildsTotal.WithLabelValues("star", "unsatisfiable")))
	assert.Equal(t, 1.0, counterValue(t, r.BuildsTotal.WithLabelValues("ring", "invalid")))
	assert.Equal(t, 5.0, gaugeValue(t, r.UnsatisfiedBudget))
	assert.Equal(t, 40.0, gaugeValue(t, r.HubCoverage))
	assert.Zero(t, counterValue(t, r.NodesPlacedTotal.WithLabelValues("mesh")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild(state.Star, starTopology(), nil, time.Millisecond)

	path := filepath.Join(t.TempDir(), "topogen.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `topogen_builds_total{status="ok",topology="star"} 1`), out)
	assert.Contains(t, out, "# HELP topogen_topology_edges")
	assert.Contains(t, out, "topogen_hub_coverage_percent 97.5")
}
