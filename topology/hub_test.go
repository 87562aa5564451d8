package topology

import (
	"errors"
	"testing"

	"github.com/encodeous/topogen/state"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClusterer(rng int, budget int) *HubClusterer {
	return NewHubClusterer(state.HubCfg{
		Range:      state.IntRange{Min: 200, Max: 250},
		LinkBudget: state.Fixed(50),
		Coverage:   95,
	}, budget, NewRand(uint64(rng)), nil)
}

func TestNewHubClusterer_DrawsOnce(t *testing.T) {
	hc := newTestClusterer(1, 5)
	assert.True(t, state.IntRange{Min: 200, Max: 250}.Contains(hc.Range))
	assert.Equal(t, 50, hc.LinkBudget)
	assert.Equal(t, 5, hc.Budget)
}

func TestSearch_SingleHubCoversDenseArea(t *testing.T) {
	p := NewNodePool(state.Bounds{MaxX: 100, MaxY: 100}, NewRand(4))
	p.AddNodes(20, state.Fixed(10), state.Fixed(1))

	hc := newTestClusterer(4, 5)
	c, err := hc.Search(p.Nodes())
	require.NoError(t, err)
	assert.Len(t, c.Centroids, 1)
	assert.Equal(t, 1, c.Attempts)
	assert.InDelta(t, 100.0, c.Coverage, 1e-9)
	assert.Len(t, c.Labels, 20)
}

func TestSearch_AcceptedCoverageExceedsTarget(t *testing.T) {
	for seed := range uint64(10) {
		p := NewNodePool(state.Bounds{MaxX: 2000, MaxY: 2000}, NewRand(seed))
		p.AddNodes(40, state.Fixed(10), state.Fixed(1))
		hc := newTestClusterer(int(seed), 40)
		c, err := hc.Search(p.Nodes())
		if err != nil {
			var unsat *state.ConstraintUnsatisfiableError
			require.ErrorAs(t, err, &unsat)
			continue
		}
		covered := 0
		for i, n := range c.Members {
			if planar.Distance(orb.Point{float64(n.X), float64(n.Y)}, c.Centroids[c.Labels[i]]) < float64(hc.Range) {
				covered++
			}
		}
		assert.Greater(t, float64(covered)/float64(len(c.Members))*100, hc.Coverage)
		assert.Less(t, len(c.Centroids), hc.Budget)
		assert.Equal(t, len(c.Centroids), c.Attempts)
	}
}

func TestSearch_Unsatisfiable(t *testing.T) {
	p := NewNodePool(state.Bounds{MaxX: 100000, MaxY: 100000}, NewRand(9))
	p.AddNodes(20, state.Fixed(10), state.Fixed(1))

	hc := newTestClusterer(9, 5)
	c, err := hc.Search(p.Nodes())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, state.ErrConstraintUnsatisfiable))

	var unsat *state.ConstraintUnsatisfiableError
	require.ErrorAs(t, err, &unsat)
	assert.Equal(t, 5, unsat.HubBudget)
	assert.Equal(t, 95.0, unsat.Coverage)
	assert.Less(t, unsat.BestCoverage, 95.0)
	assert.GreaterOrEqual(t, unsat.BestHubs, 1)
	assert.Less(t, unsat.BestHubs, 5)
	assert.Contains(t, err.Error(), "hub budget 5")
}

func TestSearch_BudgetOfOneTriesNothing(t *testing.T) {
	p := NewNodePool(state.Bounds{MaxX: 10, MaxY: 10}, NewRand(2))
	p.AddNodes(5, state.Fixed(10), state.Fixed(1))

	_, err := newTestClusterer(2, 1).Search(p.Nodes())
	var unsat *state.ConstraintUnsatisfiableError
	require.ErrorAs(t, err, &unsat)
	assert.Zero(t, unsat.BestHubs)
}

func TestPlace_ChainsOnlyHubsWithMembers(t *testing.T) {
	p := newTestPool()
	a := addAt(p, 0, 0, 0, 1, 1)
	b := addAt(p, 10, 0, 4, 1, 1)
	c := addAt(p, 500, 500, 0, 1, 1)

	hc := newTestClusterer(1, 5)
	clustering := &Clustering{
		Centroids: []orb.Point{{5, 0}, {300, 300}, {500.4, 499.6}},
		Members:   []*Node{a, b, c},
		Labels:    []int{0, 0, 2},
	}
	hubs, chain := hc.Place(p, clustering)
	require.Len(t, hubs, 3)

	assert.Equal(t, []int{5, 0, 2}, []int{hubs[0].X, hubs[0].Y, hubs[0].Z})
	assert.Equal(t, []int{500, 500, 0}, []int{hubs[2].X, hubs[2].Y, hubs[2].Z})
	for i, hub := range hubs {
		assert.True(t, hub.IsHub)
		assert.Equal(t, i, hub.HubId)
		assert.Equal(t, hc.Range, hub.RangeRadius)
		assert.Equal(t, hc.LinkBudget, hub.LinkBudget)
	}

	assert.Equal(t, []NodeId{a.Id, b.Id}, hubs[0].Neighbors.Sorted())
	assert.Empty(t, hubs[1].Neighbors)
	assert.Equal(t, []NodeId{c.Id}, hubs[2].Neighbors.Sorted())
	assert.True(t, a.Neighbors.Has(hubs[0].Id))
	assert.True(t, c.Neighbors.Has(hubs[2].Id))

	// the memberless hub is skipped but still becomes the predecessor
	assert.Equal(t, []state.Pair[NodeId, NodeId]{pair(hubs[2].Id, hubs[1].Id)}, chain)

	removed := RemoveDisconnected(p)
	assert.Equal(t, []NodeId{hubs[1].Id}, removed)
}
