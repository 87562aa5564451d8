package topology

import (
	"math"
	"slices"
)

type NodeId int

type IdSet map[NodeId]struct{}

func (s IdSet) Add(id NodeId) {
	s[id] = struct{}{}
}

func (s IdSet) Has(id NodeId) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order so sampling stays reproducible
func (s IdSet) Sorted() []NodeId {
	ids := make([]NodeId, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Node is a single radio in the simulation volume
type Node struct {
	Id          NodeId
	X, Y, Z     int
	RangeRadius int
	// LinkBudget is the number of connections this node may still accept. Only the linker lowers it.
	LinkBudget int
	// MaxLinks is the budget drawn at creation
	MaxLinks  int
	Neighbors IdSet
	Links     []NodeId
	IsHub     bool
	HubId     int
}

func Distance(a, b *Node) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
