//go:build integration

package integration

import (
	"context"
	"log/slog"
	"sync"

	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
)

// Outcome is the result of one seeded build
type Outcome struct {
	Seed     uint64
	Topology *topology.Topology
	Err      error
}

// BuildHarness runs independent builds of one config across a pool of workers
type BuildHarness struct {
	Cfg     state.BuildCfg
	Workers int
	Log     *slog.Logger
}

// Run builds every seed and returns the outcomes in seed order. Seeds not started before ctx is done are skipped.
func (h *BuildHarness) Run(ctx context.Context, seeds []uint64) []Outcome {
	workers := max(h.Workers, 1)
	jobs := make(chan int)
	out := make([]Outcome, len(seeds))
	done := make([]bool, len(seeds))

	wg := sync.WaitGroup{}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cfg := h.Cfg
				cfg.Seed = seeds[idx]
				t, err := topology.Build(cfg, h.Log)
				out[idx] = Outcome{Seed: seeds[idx], Topology: t, Err: err}
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range seeds {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	finished := make([]Outcome, 0, len(seeds))
	for idx, ok := range done {
		if ok {
			finished = append(finished, out[idx])
		}
	}
	return finished
}

func Seeds(from, n uint64) []uint64 {
	seeds := make([]uint64, 0, n)
	for i := range n {
		seeds = append(seeds, from+i)
	}
	return seeds
}
