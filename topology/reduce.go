package topology

import (
	"slices"

	"github.com/encodeous/topogen/state"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// RemoveDisconnected prunes every node, hubs included, whose neighbor set is empty.
// A node with neighbors but no realized link survives.
func RemoveDisconnected(p *NodePool) []NodeId {
	removed := make([]NodeId, 0)
	for _, node := range p.Nodes() {
		if len(node.Neighbors) == 0 {
			removed = append(removed, node.Id)
		}
	}
	for _, id := range removed {
		p.prune(id)
	}
	return removed
}

// LiveEdges drops edges touching a pruned node
func LiveEdges(p *NodePool, edges []state.Pair[NodeId, NodeId]) []state.Pair[NodeId, NodeId] {
	return slices.DeleteFunc(slices.Clone(edges), func(e state.Pair[NodeId, NodeId]) bool {
		return p.Get(e.V1) == nil || p.Get(e.V2) == nil
	})
}

// LargestComponent partitions the undirected graph over ids and edges and returns the members of the
// biggest component in ascending order, along with the number of components.
// Ties go to the component holding the smallest node id.
func LargestComponent(ids []NodeId, edges []state.Pair[NodeId, NodeId]) ([]NodeId, int) {
	g := simple.NewUndirectedGraph()
	for _, id := range ids {
		if g.Node(int64(id)) == nil {
			g.AddNode(simple.Node(id))
		}
	}
	for _, e := range edges {
		from, to := int64(e.V1), int64(e.V2)
		if from == to || g.Node(from) == nil || g.Node(to) == nil {
			continue
		}
		if g.HasEdgeBetween(from, to) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	comps := topo.ConnectedComponents(g)
	var best []NodeId
	for _, comp := range comps {
		members := make([]NodeId, 0, len(comp))
		for _, n := range comp {
			members = append(members, NodeId(n.ID()))
		}
		slices.Sort(members)
		if len(members) > len(best) || (len(members) == len(best) && len(best) != 0 && members[0] < best[0]) {
			best = members
		}
	}
	return best, len(comps)
}

// Retain prunes every node not in keep
func Retain(p *NodePool, keep []NodeId) []NodeId {
	set := make(IdSet, len(keep))
	for _, id := range keep {
		set.Add(id)
	}
	removed := make([]NodeId, 0)
	for _, id := range p.Ids() {
		if !set.Has(id) {
			removed = append(removed, id)
			p.prune(id)
		}
	}
	return removed
}
