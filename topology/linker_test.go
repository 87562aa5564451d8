package topology

import (
	"testing"

	"github.com/encodeous/topogen/state"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLinks_SkipsZeroBudget(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 100, 0)
	b := addAt(p, 10, 0, 0, 100, 0)
	FindNeighbors(p, false)

	edges, stats := CreateLinks(p, NewRand(3), false)
	assert.Empty(t, edges)
	assert.Zero(t, stats.Sampled)
	assert.Empty(t, a.Links)
	assert.Empty(t, b.Links)
}

func TestCreateLinks_OnlyTargetBudgetConsumed(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 100, 1)
	b := addAt(p, 10, 0, 0, 5, 1)
	FindNeighbors(p, false)
	require.True(t, a.Neighbors.Has(b.Id))
	require.Empty(t, b.Neighbors)

	edges, stats := CreateLinks(p, NewRand(3), false)
	assert.Equal(t, []state.Pair[NodeId, NodeId]{pair(a.Id, b.Id)}, edges)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, a.LinkBudget)
	assert.Equal(t, 0, b.LinkBudget)
}

func TestCreateLinks_SymmetricConsumesBoth(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 100, 1)
	b := addAt(p, 10, 0, 0, 100, 1)
	FindNeighbors(p, true)

	edges, stats := CreateLinks(p, NewRand(3), true)
	require.Len(t, edges, 1)
	// the second node has spent its budget accepting and never samples
	assert.Equal(t, 1, stats.Sampled)
	assert.Equal(t, 1, stats.Accepted)
	assert.Zero(t, a.LinkBudget)
	assert.Zero(t, b.LinkBudget)
}

func TestCreateLinks_DropsExhaustedTargets(t *testing.T) {
	p := newTestPool()
	hub := addAt(p, 0, 0, 0, 100, 1)
	var leaves []*Node
	for i := range 4 {
		leaves = append(leaves, addAt(p, 10+i, 0, 0, 100, 1))
	}
	// every leaf only sees the center
	for _, l := range leaves {
		l.Neighbors.Add(hub.Id)
	}

	edges, stats := CreateLinks(p, NewRand(7), false)
	assert.Len(t, edges, 1)
	assert.Equal(t, 4, stats.Sampled)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 3, stats.Dropped)
	for _, l := range leaves {
		// sampled links remain recorded even when dropped
		assert.Equal(t, []NodeId{hub.Id}, l.Links)
	}
}

func TestCreateLinks_LinksAreNeighbors(t *testing.T) {
	p := NewNodePool(testBounds, NewRand(11))
	p.AddNodes(60, state.IntRange{Min: 100, Max: 250}, state.IntRange{Min: 1, Max: 5})
	FindNeighbors(p, false)
	CreateLinks(p, NewRand(12), false)

	for _, n := range p.Nodes() {
		assert.LessOrEqual(t, len(n.Links), n.MaxLinks)
		seen := make(IdSet)
		for _, l := range n.Links {
			assert.True(t, n.Neighbors.Has(l), "link %d of %d is not a neighbor", l, n.Id)
			assert.False(t, seen.Has(l), "duplicate link %d of %d", l, n.Id)
			seen.Add(l)
		}
	}
}

func TestCreateLinks_TargetBudgetBound(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("accepted links per target never exceed its drawn budget", prop.ForAll(
		func(seed uint64, n, maxBudget int, symmetric bool) bool {
			rng := NewRand(seed)
			p := NewNodePool(state.Bounds{MaxX: 400, MaxY: 400}, rng)
			p.AddNodes(n, state.IntRange{Min: 50, Max: 200}, state.IntRange{Min: 0, Max: maxBudget})
			FindNeighbors(p, symmetric)
			edges, stats := CreateLinks(p, rng, symmetric)

			if stats.Accepted != len(edges) || stats.Accepted+stats.Dropped != stats.Sampled {
				return false
			}
			accepted := make(map[NodeId]int)
			initiated := make(map[NodeId]int)
			for _, e := range edges {
				initiated[e.V1]++
				accepted[e.V2]++
			}
			for _, node := range p.Nodes() {
				if accepted[node.Id] > node.MaxLinks {
					return false
				}
				if symmetric && accepted[node.Id]+initiated[node.Id] > node.MaxLinks {
					return false
				}
				if node.LinkBudget < 0 {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.IntRange(0, 60),
		gen.IntRange(0, 6),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestSample(t *testing.T) {
	ids := []NodeId{1, 2, 3, 4, 5, 6}
	got := sample(NewRand(5), ids, 4)
	assert.Len(t, got, 4)
	assert.Equal(t, 4, cap(got))

	seen := make(IdSet)
	for _, id := range got {
		assert.False(t, seen.Has(id))
		seen.Add(id)
	}
	assert.Empty(t, sample(NewRand(5), []NodeId{1, 2}, 0))
}
