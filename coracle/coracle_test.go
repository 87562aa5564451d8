package coracle

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a hub (4) serving servers 1, 2 and 3
func testTopology() *topology.Topology {
	return &topology.Topology{
		Kind: state.Star,
		Nodes: []topology.NodeInfo{
			{Id: 1, Type: topology.Server, X: 0, Y: 0},
			{Id: 2, Type: topology.Server, X: 3, Y: 4},
			{Id: 3, Type: topology.Server, X: 6, Y: 8},
			{Id: 4, Type: topology.Hub, X: 3, Y: 0},
		},
		Edges: []topology.Edge{
			{A: 1, B: 4, Distance: 3},
			{A: 2, B: 4, Distance: 4},
			{A: 3, B: 4, Distance: 8.54400374531753},
		},
	}
}

func TestBuild_Layout(t *testing.T) {
	cfg := state.DefaultBuildCfg()
	doc, err := Build(testTopology(), &cfg)
	require.NoError(t, err)

	assert.Equal(t, 1000, doc.Termination)
	assert.Equal(t, Consensus{"raft", 60, 300, 30}, doc.Consensus)
	assert.Equal(t, []Node{
		{TypeServer, 1}, {TypeServer, 2}, {TypeServer, 3}, {TypeHub, 4},
	}, doc.Network.Nodes)
	assert.Equal(t, Link{Start: 2, End: 4, Id: 2, Direction: DirectionBi, Distance: 4}, doc.Network.Links[1])

	require.Len(t, doc.Network.Events, 1)
	initial := doc.Network.Events[0]
	assert.Zero(t, initial.Time)
	assert.Equal(t, []LinkState{{1, "s", true}, {2, "s", true}, {3, "s", true}}, initial.Links)
	assert.Len(t, initial.Nodes, 4)
	for _, n := range initial.Nodes {
		assert.True(t, n.Active)
	}
}

func TestBuild_ConfiguredEvents(t *testing.T) {
	cfg := state.DefaultBuildCfg()
	cfg.Events = []state.EventCfg{
		{Time: 500, Link: 2, Active: true},
		{Time: 200, Node: 4},
		{Time: 200, Link: 2},
	}
	doc, err := Build(testTopology(), &cfg)
	require.NoError(t, err)

	want := []Event{
		{Time: 200, Links: []LinkState{{2, "s", false}}, Nodes: []NodeState{{4, false}}},
		{Time: 500, Links: []LinkState{{2, "s", true}}, Nodes: []NodeState{}},
	}
	if diff := cmp.Diff(want, doc.Network.Events[1:]); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_RejectsUnknownTargets(t *testing.T) {
	for _, ev := range []state.EventCfg{
		{Time: 10, Node: 9},
		{Time: 10, Link: 4},
		{Time: 10},
		{Time: 0, Node: 1},
	} {
		cfg := state.DefaultBuildCfg()
		cfg.Events = []state.EventCfg{ev}
		_, err := Build(testTopology(), &cfg)
		assert.ErrorIs(t, err, state.ErrInvalidConfig, "%+v", ev)
	}
}

func TestWrite_Format(t *testing.T) {
	cfg := state.DefaultBuildCfg()
	doc, err := Build(testTopology(), &cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n    \"termination\": 1000,\n    \"consensus\": {"))
	assert.Contains(t, out, `"direction": "bi"`)
	assert.Contains(t, out, `"election_timeout_min": 60`)
}

func TestReadWrite_RoundTrip(t *testing.T) {
	cfg := state.DefaultBuildCfg()
	cfg.Events = []state.EventCfg{{Time: 100, Node: 2}}
	doc, err := Build(testTopology(), &cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "net.json")
	require.NoError(t, WriteFile(path, doc))
	read, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, read); diff != "" {
		t.Errorf("round trip mismatch (-wrote +read):\n%s", diff)
	}
}

func TestRead_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":        `{"termination": `,
		"unknown field": `{"termination": 5, "speed": 3}`,
		"bad type":      `{"network": {"nodes": [{"type": "router", "id": 1}]}}`,
		"dangling link": `{"network": {"nodes": [{"type": "server", "id": 1}], "links": [{"start": 1, "end": 2, "id": 1}]}}`,
		"dangling event": `{"network": {"nodes": [{"type": "server", "id": 1}],
			"events": [{"time": 0, "links": [{"id": 3, "type": "s", "active": true}], "nodes": []}]}}`,
		"duplicate node": `{"network": {"nodes": [{"type": "server", "id": 1}, {"type": "hub", "id": 1}]}}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(input))
			assert.ErrorIs(t, err, state.ErrInvalidConfig)
		})
	}
}

func TestSummarize(t *testing.T) {
	cfg := state.DefaultBuildCfg()
	doc, err := Build(testTopology(), &cfg)
	require.NoError(t, err)

	s := doc.Summarize()
	assert.Equal(t, 3, s.Servers)
	assert.Equal(t, 1, s.Hubs)
	assert.Equal(t, 3, s.Links)
	assert.Equal(t, 1, s.Events)
	assert.InDelta(t, (3+4+8.54400374531753)/3, s.MeanDistance, 1e-9)
	assert.InDelta(t, 8.54400374531753, s.MaxDistance, 1e-9)
	assert.Equal(t, 1, s.MinDegree)
	assert.Equal(t, 3, s.MaxDegree)

	assert.Equal(t, Summary{}, (&Document{}).Summarize())
}
