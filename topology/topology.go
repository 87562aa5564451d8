package topology

import (
	"slices"

	"github.com/encodeous/topogen/state"
)

type NodeType string

const (
	Server NodeType = "server"
	Hub    NodeType = "hub"
)

type NodeInfo struct {
	Id          NodeId   `yaml:"id"`
	Type        NodeType `yaml:"type"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Z           int      `yaml:"z"`
	RangeRadius int      `yaml:"range"`
}

// Edge is an undirected accepted link, A < B
type Edge struct {
	A        NodeId  `yaml:"a"`
	B        NodeId  `yaml:"b"`
	Distance float64 `yaml:"distance"`
}

type Stats struct {
	Placed            int     `yaml:"placed"`
	NeighborRelations int     `yaml:"neighbor_relations"`
	LinksSampled      int     `yaml:"links_sampled"`
	LinksAccepted     int     `yaml:"links_accepted"`
	LinksDropped      int     `yaml:"links_dropped"`
	Pruned            int     `yaml:"pruned"`
	Components        int     `yaml:"components"`
	HubAttempts       int     `yaml:"hub_attempts"`
	Hubs              int     `yaml:"hubs"`
	Coverage          float64 `yaml:"coverage"`
}

// Topology is the normalized synthesis result: nodes by ascending id, edges deduplicated and sorted
type Topology struct {
	Kind     state.TopologyKind `yaml:"kind"`
	Seed     uint64             `yaml:"seed"`
	Nodes    []NodeInfo         `yaml:"nodes"`
	Edges    []Edge             `yaml:"edges"`
	HubRange int                `yaml:"hub_range,omitempty"`
	Stats    Stats              `yaml:"stats"`
}

// normalize snapshots the live pool and the edges between live nodes
func normalize(kind state.TopologyKind, p *NodePool, edges []state.Pair[NodeId, NodeId]) *Topology {
	t := &Topology{Kind: kind}
	for _, n := range p.Nodes() {
		typ := Server
		if n.IsHub {
			typ = Hub
		}
		t.Nodes = append(t.Nodes, NodeInfo{
			Id:          n.Id,
			Type:        typ,
			X:           n.X,
			Y:           n.Y,
			Z:           n.Z,
			RangeRadius: n.RangeRadius,
		})
	}
	slices.SortFunc(t.Nodes, func(a, b NodeInfo) int {
		return int(a.Id - b.Id)
	})

	pairs := make([]state.Pair[NodeId, NodeId], 0, len(edges))
	for _, e := range LiveEdges(p, edges) {
		pairs = append(pairs, state.MakeSortedPair(e.V1, e.V2))
	}
	state.SortPairs(pairs)
	pairs = slices.Compact(pairs)
	for _, e := range pairs {
		t.Edges = append(t.Edges, Edge{
			A:        e.V1,
			B:        e.V2,
			Distance: Distance(p.Get(e.V1), p.Get(e.V2)),
		})
	}
	return t
}

func (t *Topology) Node(id NodeId) (NodeInfo, bool) {
	idx, ok := slices.BinarySearchFunc(t.Nodes, id, func(n NodeInfo, id NodeId) int {
		return int(n.Id - id)
	})
	if !ok {
		return NodeInfo{}, false
	}
	return t.Nodes[idx], true
}

func (t *Topology) Servers() []NodeInfo {
	return t.ofType(Server)
}

func (t *Topology) Hubs() []NodeInfo {
	return t.ofType(Hub)
}

func (t *Topology) ofType(typ NodeType) []NodeInfo {
	out := make([]NodeInfo, 0)
	for _, n := range t.Nodes {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// Degree counts incident edges per node
func (t *Topology) Degree() map[NodeId]int {
	deg := make(map[NodeId]int, len(t.Nodes))
	for _, n := range t.Nodes {
		deg[n.Id] = 0
	}
	for _, e := range t.Edges {
		deg[e.A]++
		deg[e.B]++
	}
	return deg
}
