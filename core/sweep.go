package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/encodeous/topogen/metrics"
	"github.com/encodeous/topogen/state"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type SweepParam string

const (
	SweepNodes       SweepParam = "nodes"
	SweepHeartbeat   SweepParam = "heartbeat"
	SweepElectionMax SweepParam = "election-max"

	ManifestName = "manifest.yaml"
)

func ParseSweepParam(s string) (SweepParam, error) {
	switch p := SweepParam(strings.ToLower(strings.TrimSpace(s))); p {
	case SweepNodes, SweepHeartbeat, SweepElectionMax:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown sweep parameter %q, expected nodes, heartbeat or election-max", state.ErrInvalidConfig, s)
}

func (p SweepParam) apply(cfg *state.BuildCfg, v int) {
	switch p {
	case SweepNodes:
		cfg.Nodes = v
	case SweepHeartbeat:
		cfg.Consensus.HeartbeatInterval = v
	case SweepElectionMax:
		cfg.Consensus.ElectionTimeoutMax = v
	}
}

// ParseSweepValues accepts a comma separated list where every item is a value or an inclusive start:end:step range
func ParseSweepValues(s string) ([]int, error) {
	values := make([]int, 0)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		nums := make([]int, len(parts))
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("%w: bad sweep value %q", state.ErrInvalidConfig, item)
			}
			nums[i] = v
		}
		switch len(nums) {
		case 1:
			values = append(values, nums[0])
		case 3:
			if nums[2] <= 0 || nums[1] < nums[0] {
				return nil, fmt.Errorf("%w: bad sweep range %q", state.ErrInvalidConfig, item)
			}
			for v := nums[0]; v <= nums[1]; v += nums[2] {
				values = append(values, v)
			}
		default:
			return nil, fmt.Errorf("%w: bad sweep value %q, expected v or start:end:step", state.ErrInvalidConfig, item)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no sweep values", state.ErrInvalidConfig)
	}
	return values, nil
}

type SweepOpts struct {
	Param  SweepParam
	Values []int
	Dir    string
	// Images renders a PNG next to every config
	Images  bool
	Metrics *metrics.Registry
}

type SweepRun struct {
	Id     string `yaml:"id"`
	Value  int    `yaml:"value"`
	Seed   uint64 `yaml:"seed"`
	Output string `yaml:"output,omitempty"`
	Nodes  int    `yaml:"nodes"`
	Links  int    `yaml:"links"`
	Hubs   int    `yaml:"hubs"`
	Error  string `yaml:"error,omitempty"`
}

type Manifest struct {
	Id       string             `yaml:"id"`
	Created  time.Time          `yaml:"created"`
	Topology state.TopologyKind `yaml:"topology"`
	Param    SweepParam         `yaml:"param"`
	Runs     []SweepRun         `yaml:"runs"`
}

// Failed counts runs that produced no config
func (m *Manifest) Failed() int {
	n := 0
	for _, r := range m.Runs {
		if r.Error != "" {
			n++
		}
	}
	return n
}

// Sweep generates one config per value, run i uses seed base.Seed+i. A run whose topology can't be built is
// recorded in the manifest and the sweep moves on, invalid configs and I/O errors abort it.
func Sweep(ctx context.Context, base state.BuildCfg, opts SweepOpts, log *slog.Logger) (*Manifest, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if _, err := ParseSweepParam(string(opts.Param)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}

	m := &Manifest{
		Id:       uuid.NewString(),
		Created:  time.Now().UTC(),
		Topology: base.Topology,
		Param:    opts.Param,
		Runs:     make([]SweepRun, 0, len(opts.Values)),
	}
	for i, v := range opts.Values {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		cfg := base
		cfg.Seed = base.Seed + uint64(i)
		opts.Param.apply(&cfg, v)

		name := fmt.Sprintf("%s-%s-%d", cfg.Topology, opts.Param, v)
		run := SweepRun{
			Id:    uuid.NewString(),
			Value: v,
			Seed:  cfg.Seed,
		}
		gen := GenerateOpts{
			Output:  filepath.Join(opts.Dir, name+".json"),
			Metrics: opts.Metrics,
		}
		if opts.Images {
			gen.Image = filepath.Join(opts.Dir, name+".png")
		}

		res, err := Generate(&cfg, gen, log.With("run", run.Id))
		switch {
		case err == nil:
			run.Output = filepath.Base(gen.Output)
			run.Nodes = len(res.Topology.Nodes)
			run.Links = len(res.Topology.Edges)
			run.Hubs = len(res.Topology.Hubs())
			log.Info("sweep run complete", "param", opts.Param, "value", v, "nodes", run.Nodes, "links", run.Links)
		case errors.Is(err, state.ErrEmptyTopology), errors.Is(err, state.ErrConstraintUnsatisfiable):
			run.Error = err.Error()
			log.Warn("sweep run failed", "param", opts.Param, "value", v, "error", err)
		default:
			return m, err
		}
		m.Runs = append(m.Runs, run)
	}

	if err := WriteManifest(filepath.Join(opts.Dir, ManifestName), m); err != nil {
		return m, err
	}
	return m, nil
}

func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}
