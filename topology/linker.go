package topology

import (
	"math/rand/v2"

	"github.com/encodeous/topogen/state"
)

type LinkStats struct {
	Sampled  int
	Accepted int
	// Dropped counts sampled links whose target had no budget left. They are not retried.
	Dropped int
}

// CreateLinks visits the nodes in a shuffled order. Each node samples min(budget, |neighbors|) distinct
// neighbors and keeps every sample whose target still has budget, consuming one unit of the target's budget.
// The initiator's own budget is left alone unless symmetric is set.
func CreateLinks(p *NodePool, rng *rand.Rand, symmetric bool) ([]state.Pair[NodeId, NodeId], LinkStats) {
	var stats LinkStats
	edges := make([]state.Pair[NodeId, NodeId], 0)

	ids := p.Ids()
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	for _, id := range ids {
		node := p.Get(id)
		if len(node.Neighbors) == 0 || node.LinkBudget <= 0 {
			continue
		}
		count := min(node.LinkBudget, len(node.Neighbors))
		node.Links = sample(rng, node.Neighbors.Sorted(), count)
		stats.Sampled += len(node.Links)

		for _, target := range node.Links {
			peer := p.Get(target)
			if peer == nil || peer.LinkBudget <= 0 || (symmetric && node.LinkBudget <= 0) {
				stats.Dropped++
				continue
			}
			edges = append(edges, state.Pair[NodeId, NodeId]{V1: node.Id, V2: peer.Id})
			peer.LinkBudget--
			if symmetric {
				node.LinkBudget--
			}
			stats.Accepted++
		}
	}
	return edges, stats
}

// sample picks k distinct ids uniformly without replacement, in draw order
func sample(rng *rand.Rand, ids []NodeId, k int) []NodeId {
	for i := range k {
		j := i + rng.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k:k]
}
