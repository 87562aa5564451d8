package topology

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/encodeous/topogen/perf"
	"github.com/encodeous/topogen/state"
)

// seedStream keeps the PCG stream fixed so a seed alone determines the run
const seedStream = 0x746f706f67656e

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

// Builder synthesizes one topology. Every Build call owns its pool and random source.
type Builder struct {
	Cfg state.BuildCfg
	Log *slog.Logger
}

func NewBuilder(cfg state.BuildCfg, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{Cfg: cfg, Log: log}
}

// Build runs the pipeline for the configured kind
func Build(cfg state.BuildCfg, log *slog.Logger) (*Topology, error) {
	return NewBuilder(cfg, log).Build()
}

func (b *Builder) Build() (*Topology, error) {
	start := time.Now()
	defer perf.Since(perf.BuildLatency, start)
	perf.BuildsPerSecond.Add(1)

	rng := NewRand(b.Cfg.Seed)
	var (
		t   *Topology
		err error
	)
	switch b.Cfg.Topology {
	case state.Mesh:
		t, err = b.buildMesh(rng)
	case state.Star:
		t, err = b.buildStar(rng)
	default:
		return nil, fmt.Errorf("%w: %q", state.ErrInvalidTopology, b.Cfg.Topology)
	}
	if err != nil {
		return nil, err
	}
	if len(t.Nodes) == 0 || len(t.Edges) == 0 {
		return nil, fmt.Errorf("%w: %d nodes, %d edges", state.ErrEmptyTopology, len(t.Nodes), len(t.Edges))
	}
	t.Seed = b.Cfg.Seed
	b.Log.Info("topology synthesized",
		"kind", t.Kind,
		"nodes", len(t.Nodes),
		"edges", len(t.Edges),
		"hubs", t.Stats.Hubs,
		"elapsed", time.Since(start))
	return t, nil
}

func (b *Builder) place(rng *rand.Rand, linkBudget state.IntRange) *NodePool {
	defer perf.Since(perf.PlacementLatency, time.Now())
	pool := NewNodePool(b.Cfg.Bounds, rng)
	pool.AddNodes(b.Cfg.Nodes, b.Cfg.Range, linkBudget)
	b.Log.Debug("nodes placed", "count", pool.Len())
	return pool
}

func (b *Builder) link(pool *NodePool, rng *rand.Rand, stats *Stats) []state.Pair[NodeId, NodeId] {
	defer perf.Since(perf.LinkLatency, time.Now())
	edges, ls := CreateLinks(pool, rng, b.Cfg.Symmetric)
	stats.LinksSampled = ls.Sampled
	stats.LinksAccepted = ls.Accepted
	stats.LinksDropped = ls.Dropped
	b.Log.Debug("links created", "sampled", ls.Sampled, "accepted", ls.Accepted, "dropped", ls.Dropped)
	return edges
}

func (b *Builder) buildMesh(rng *rand.Rand) (*Topology, error) {
	var stats Stats
	pool := b.place(rng, b.Cfg.LinkBudget)
	stats.Placed = pool.Len()

	discoveryStart := time.Now()
	stats.NeighborRelations = FindNeighbors(pool, b.Cfg.Symmetric)
	perf.Since(perf.DiscoveryLatency, discoveryStart)
	b.Log.Debug("neighbors discovered", "relations", stats.NeighborRelations)

	edges := b.link(pool, rng, &stats)

	reduceStart := time.Now()
	removed := RemoveDisconnected(pool)
	edges = LiveEdges(pool, edges)
	component, count := LargestComponent(pool.Ids(), edges)
	removed = append(removed, Retain(pool, component)...)
	perf.Since(perf.ReduceLatency, reduceStart)
	stats.Pruned = len(removed)
	stats.Components = count
	b.Log.Debug("reduced to largest component", "components", count, "kept", pool.Len(), "pruned", len(removed))

	t := normalize(state.Mesh, pool, edges)
	t.Stats = stats
	return t, nil
}

func (b *Builder) buildStar(rng *rand.Rand) (*Topology, error) {
	var stats Stats
	pool := b.place(rng, state.Fixed(state.StarNodeLinkBudget))
	stats.Placed = pool.Len()
	if pool.Len() == 0 {
		return nil, fmt.Errorf("%w: no nodes placed", state.ErrEmptyTopology)
	}

	clusterStart := time.Now()
	hc := NewHubClusterer(b.Cfg.Hub, b.Cfg.HubBudget(), rng, b.Log)
	clustering, err := hc.Search(pool.Nodes())
	if err != nil {
		return nil, err
	}
	hubs, chain := hc.Place(pool, clustering)
	perf.Since(perf.ClusterLatency, clusterStart)
	stats.HubAttempts = clustering.Attempts
	stats.Coverage = clustering.Coverage
	b.Log.Debug("hubs placed", "hubs", len(hubs), "coverage", clustering.Coverage, "range", hc.Range, "budget", hc.LinkBudget)

	edges := b.link(pool, rng, &stats)
	edges = append(edges, chain...)

	reduceStart := time.Now()
	removed := RemoveDisconnected(pool)
	perf.Since(perf.ReduceLatency, reduceStart)
	stats.Pruned = len(removed)
	stats.Hubs = len(pool.Hubs())

	t := normalize(state.Star, pool, edges)
	t.HubRange = hc.Range
	t.Stats = stats
	return t, nil
}
