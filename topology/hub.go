package topology

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/encodeous/topogen/kmeans"
	"github.com/encodeous/topogen/state"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// HubClusterer searches for the fewest hubs that keep enough nodes within hub range of their centroid.
// Clustering happens on the x/y plane.
type HubClusterer struct {
	// Range and LinkBudget are drawn once and shared by every hub
	Range      int
	LinkBudget int
	Budget     int
	Coverage   float64
	KMeans     kmeans.Options

	rng *rand.Rand
	log *slog.Logger
}

// Clustering is an accepted hub count with its centroids and per-node assignment
type Clustering struct {
	Centroids []orb.Point
	Members   []*Node
	// Labels[i] is the cluster of Members[i]
	Labels   []int
	Coverage float64
	// Attempts is the number of hub counts tried, the accepted one included
	Attempts int
}

func NewHubClusterer(cfg state.HubCfg, budget int, rng *rand.Rand, log *slog.Logger) *HubClusterer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &HubClusterer{
		Range:      draw(rng, cfg.Range),
		LinkBudget: draw(rng, cfg.LinkBudget),
		Budget:     budget,
		Coverage:   cfg.Coverage,
		KMeans: kmeans.Options{
			Restarts:      state.KMeansRestarts,
			MaxIterations: state.KMeansMaxIterations,
			Tolerance:     state.KMeansTolerance,
		},
		rng: rng,
		log: log,
	}
}

// Search tries k = 1, 2, ... up to Budget-1 and accepts the first k whose coverage strictly exceeds the target.
// It fails with *state.ConstraintUnsatisfiableError when no k qualifies.
func (h *HubClusterer) Search(nodes []*Node) (*Clustering, error) {
	points := make([]orb.Point, len(nodes))
	for i, n := range nodes {
		points[i] = orb.Point{float64(n.X), float64(n.Y)}
	}

	best := &state.ConstraintUnsatisfiableError{
		HubBudget: h.Budget,
		Coverage:  h.Coverage,
	}
	attempts := 0
	for k := 1; k < h.Budget && k <= len(points); k++ {
		attempts++
		res, err := kmeans.Fit(points, k, h.rng, h.KMeans)
		if err != nil {
			return nil, err
		}
		coverage := h.coverage(points, res)
		h.log.Debug("hub count evaluated", "hubs", k, "coverage", coverage, "target", h.Coverage, "iterations", res.Iterations)
		if coverage > best.BestCoverage || best.BestHubs == 0 {
			best.BestCoverage = coverage
			best.BestHubs = k
		}
		if coverage > h.Coverage {
			return &Clustering{
				Centroids: res.Centroids,
				Members:   nodes,
				Labels:    res.Labels,
				Coverage:  coverage,
				Attempts:  attempts,
			}, nil
		}
	}
	return nil, best
}

// coverage is the percentage of points strictly inside hub range of their assigned centroid
func (h *HubClusterer) coverage(points []orb.Point, res *kmeans.Result) float64 {
	if len(points) == 0 {
		return 0
	}
	covered := 0
	for i, p := range points {
		if planar.Distance(p, res.Centroids[res.Labels[i]]) < float64(h.Range) {
			covered++
		}
	}
	return float64(covered) / float64(len(points)) * 100
}

// Place creates one hub per centroid, links every member to its hub in both neighbor sets, and chains the hubs.
// A hub is chained to the hub created right before it, provided it has at least one member.
func (h *HubClusterer) Place(p *NodePool, c *Clustering) ([]*Node, []state.Pair[NodeId, NodeId]) {
	zSum := make([]int, len(c.Centroids))
	count := make([]int, len(c.Centroids))
	for i, n := range c.Members {
		zSum[c.Labels[i]] += n.Z
		count[c.Labels[i]]++
	}

	hubs := make([]*Node, len(c.Centroids))
	for idx, centroid := range c.Centroids {
		z := p.Bounds.MinZ
		if count[idx] != 0 {
			z = int(math.Round(float64(zSum[idx]) / float64(count[idx])))
		}
		hubs[idx] = p.addHub(
			int(math.Round(centroid.X())),
			int(math.Round(centroid.Y())),
			z,
			h.Range,
			h.LinkBudget,
			idx,
		)
	}

	for i, n := range c.Members {
		hub := hubs[c.Labels[i]]
		hub.Neighbors.Add(n.Id)
		n.Neighbors.Add(hub.Id)
	}

	chain := make([]state.Pair[NodeId, NodeId], 0)
	var prev *Node
	for _, hub := range hubs {
		if prev != nil && len(hub.Neighbors) != 0 {
			chain = append(chain, state.Pair[NodeId, NodeId]{V1: hub.Id, V2: prev.Id})
		}
		prev = hub
	}
	return hubs, chain
}
