package topology

import (
	"testing"

	"github.com/encodeous/topogen/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDisconnected_ChecksNeighborsNotLinks(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 100, 0)
	b := addAt(p, 10, 0, 0, 100, 0)
	lonely := addAt(p, 900, 900, 0, 10, 3)
	FindNeighbors(p, false)
	CreateLinks(p, NewRand(1), false)

	removed := RemoveDisconnected(p)
	assert.Equal(t, []NodeId{lonely.Id}, removed)
	assert.NotNil(t, p.Get(a.Id))
	assert.NotNil(t, p.Get(b.Id))
	assert.Empty(t, a.Links)
	for _, n := range p.Nodes() {
		assert.NotEmpty(t, n.Neighbors)
	}
}

func TestLiveEdges(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 1, 1)
	b := addAt(p, 1, 0, 0, 1, 1)
	c := addAt(p, 2, 0, 0, 1, 1)
	edges := []state.Pair[NodeId, NodeId]{pair(a.Id, b.Id), pair(b.Id, c.Id)}
	p.prune(c.Id)

	assert.Equal(t, []state.Pair[NodeId, NodeId]{pair(a.Id, b.Id)}, LiveEdges(p, edges))
	assert.Len(t, edges, 2, "input must not be modified")
}

func TestLargestComponent(t *testing.T) {
	ids := []NodeId{1, 2, 3, 4, 5, 6}
	edges := []state.Pair[NodeId, NodeId]{pair(1, 2), pair(4, 3), pair(4, 5), pair(5, 4), pair(6, 6)}

	comp, count := LargestComponent(ids, edges)
	assert.Equal(t, []NodeId{3, 4, 5}, comp)
	assert.Equal(t, 3, count)
}

func TestLargestComponent_TieGoesToSmallestId(t *testing.T) {
	ids := []NodeId{1, 2, 3, 4, 5, 6}
	edges := []state.Pair[NodeId, NodeId]{pair(6, 5), pair(2, 1)}

	for range 10 {
		comp, count := LargestComponent(ids, edges)
		require.Equal(t, []NodeId{1, 2}, comp)
		require.Equal(t, 4, count)
	}
}

func TestLargestComponent_IgnoresUnknownEndpoints(t *testing.T) {
	comp, count := LargestComponent([]NodeId{1, 2}, []state.Pair[NodeId, NodeId]{pair(1, 9)})
	assert.Equal(t, []NodeId{1}, comp)
	assert.Equal(t, 2, count)

	comp, count = LargestComponent(nil, nil)
	assert.Empty(t, comp)
	assert.Zero(t, count)
}

func TestRetain(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 1, 1)
	b := addAt(p, 1, 0, 0, 1, 1)
	c := addAt(p, 2, 0, 0, 1, 1)

	removed := Retain(p, []NodeId{a.Id, c.Id})
	assert.Equal(t, []NodeId{b.Id}, removed)
	assert.Equal(t, []NodeId{a.Id, c.Id}, p.Ids())
}
