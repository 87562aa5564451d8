package topology

import (
	"github.com/encodeous/topogen/state"
)

var testBounds = state.Bounds{MaxX: 1000, MaxY: 1000}

func newTestPool() *NodePool {
	return NewNodePool(testBounds, NewRand(1))
}

// addAt places a node at a fixed position
func addAt(p *NodePool, x, y, z, radius, budget int) *Node {
	n := &Node{
		Id:          p.nextId(),
		X:           x,
		Y:           y,
		Z:           z,
		RangeRadius: radius,
		LinkBudget:  budget,
		MaxLinks:    budget,
		Neighbors:   make(IdSet),
	}
	p.insert(n)
	return n
}

func pair(a, b NodeId) state.Pair[NodeId, NodeId] {
	return state.Pair[NodeId, NodeId]{V1: a, V2: b}
}
