package topology

import (
	"math/rand/v2"
	"slices"

	"github.com/encodeous/topogen/state"
)

// axisIndex buckets nodes by their exact coordinate on one axis. keys is kept sorted for window scans.
type axisIndex struct {
	keys    []int
	buckets map[int][]*Node
}

func newAxisIndex() *axisIndex {
	return &axisIndex{buckets: make(map[int][]*Node)}
}

func (a *axisIndex) insert(v int, n *Node) {
	if _, ok := a.buckets[v]; !ok {
		idx, _ := slices.BinarySearch(a.keys, v)
		a.keys = slices.Insert(a.keys, idx, v)
	}
	a.buckets[v] = append(a.buckets[v], n)
}

func (a *axisIndex) remove(v int, n *Node) {
	bucket := slices.DeleteFunc(a.buckets[v], func(x *Node) bool {
		return x == n
	})
	if len(bucket) != 0 {
		a.buckets[v] = bucket
		return
	}
	delete(a.buckets, v)
	if idx, ok := slices.BinarySearch(a.keys, v); ok {
		a.keys = slices.Delete(a.keys, idx, idx+1)
	}
}

// window calls fun for every node whose coordinate lies in [lo, hi]
func (a *axisIndex) window(lo, hi int, fun func(n *Node)) {
	start, _ := slices.BinarySearch(a.keys, lo)
	for _, k := range a.keys[start:] {
		if k > hi {
			return
		}
		for _, n := range a.buckets[k] {
			fun(n)
		}
	}
}

// NodePool owns every node of one synthesis run. It is not safe for concurrent use.
type NodePool struct {
	Bounds state.Bounds

	rng       *rand.Rand
	idCounter NodeId
	nodes     map[NodeId]*Node
	order     []NodeId
	byX       *axisIndex
	byY       *axisIndex
	byZ       *axisIndex
}

func NewNodePool(bounds state.Bounds, rng *rand.Rand) *NodePool {
	return &NodePool{
		Bounds: bounds,
		rng:    rng,
		nodes:  make(map[NodeId]*Node),
		byX:    newAxisIndex(),
		byY:    newAxisIndex(),
		byZ:    newAxisIndex(),
	}
}

func (p *NodePool) nextId() NodeId {
	p.idCounter++
	return p.idCounter
}

// draw returns a uniform integer in the inclusive range
func draw(rng *rand.Rand, r state.IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// AddNodes places n nodes with independently drawn position, range radius and link budget
func (p *NodePool) AddNodes(n int, rangeRadius, linkBudget state.IntRange) []*Node {
	added := make([]*Node, 0, n)
	for range n {
		x := draw(p.rng, p.Bounds.X())
		y := draw(p.rng, p.Bounds.Y())
		z := draw(p.rng, p.Bounds.Z())
		r := draw(p.rng, rangeRadius)
		budget := draw(p.rng, linkBudget)
		node := &Node{
			Id:          p.nextId(),
			X:           x,
			Y:           y,
			Z:           z,
			RangeRadius: r,
			LinkBudget:  budget,
			MaxLinks:    budget,
			Neighbors:   make(IdSet),
		}
		p.insert(node)
		added = append(added, node)
	}
	return added
}

func (p *NodePool) addHub(x, y, z, rangeRadius, linkBudget, hubId int) *Node {
	hub := &Node{
		Id:          p.nextId(),
		X:           x,
		Y:           y,
		Z:           z,
		RangeRadius: rangeRadius,
		LinkBudget:  linkBudget,
		MaxLinks:    linkBudget,
		Neighbors:   make(IdSet),
		IsHub:       true,
		HubId:       hubId,
	}
	p.insert(hub)
	return hub
}

func (p *NodePool) insert(n *Node) {
	p.nodes[n.Id] = n
	p.order = append(p.order, n.Id)
	p.byX.insert(n.X, n)
	p.byY.insert(n.Y, n)
	p.byZ.insert(n.Z, n)
}

// prune drops a node during reduction. Removing nodes after synthesis is not supported.
func (p *NodePool) prune(id NodeId) {
	n, ok := p.nodes[id]
	if !ok {
		return
	}
	delete(p.nodes, id)
	p.order = slices.DeleteFunc(p.order, func(x NodeId) bool {
		return x == id
	})
	p.byX.remove(n.X, n)
	p.byY.remove(n.Y, n)
	p.byZ.remove(n.Z, n)
}

func (p *NodePool) Get(id NodeId) *Node {
	return p.nodes[id]
}

func (p *NodePool) Len() int {
	return len(p.nodes)
}

// Ids returns the live node ids in creation order
func (p *NodePool) Ids() []NodeId {
	return slices.Clone(p.order)
}

// Nodes returns the live nodes in creation order
func (p *NodePool) Nodes() []*Node {
	out := make([]*Node, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.nodes[id])
	}
	return out
}

func (p *NodePool) Hubs() []*Node {
	out := make([]*Node, 0)
	for _, id := range p.order {
		if n := p.nodes[id]; n.IsHub {
			out = append(out, n)
		}
	}
	return out
}

// ResetLinks forgets every sampled link and restores the drawn budgets. Placement and neighbors are kept.
func (p *NodePool) ResetLinks() {
	for _, n := range p.nodes {
		n.Links = nil
		n.LinkBudget = n.MaxLinks
	}
}
