package state

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

type TopologyKind string

const (
	Mesh TopologyKind = "mesh"
	Star TopologyKind = "star"
)

func ParseTopologyKind(s string) (TopologyKind, error) {
	switch k := TopologyKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Mesh, Star:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTopology, s)
}

// IntRange is an inclusive [Min, Max] interval that values are drawn uniformly from
type IntRange struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

func Fixed(v int) IntRange {
	return IntRange{Min: v, Max: v}
}

func (r IntRange) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Bounds is the simulation volume, z collapses to a single plane when MinZ == MaxZ
type Bounds struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x" validate:"gtefield=MinX"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y" validate:"gtefield=MinY"`
	MinZ int `yaml:"min_z"`
	MaxZ int `yaml:"max_z" validate:"gtefield=MinZ"`
}

func (b Bounds) X() IntRange { return IntRange{b.MinX, b.MaxX} }
func (b Bounds) Y() IntRange { return IntRange{b.MinY, b.MaxY} }
func (b Bounds) Z() IntRange { return IntRange{b.MinZ, b.MaxZ} }

// HubCfg holds the star-only constraints. Range and LinkBudget are drawn once and shared by every hub.
type HubCfg struct {
	Range      IntRange `yaml:"range"`
	LinkBudget IntRange `yaml:"link_budget"`
	Budget     int      `yaml:"budget" validate:"gte=0"` // max hub count to try, 0 means the node count
	Coverage   float64  `yaml:"coverage" validate:"gte=0,lte=100"`
}

type ConsensusCfg struct {
	Protocol           string `yaml:"protocol" validate:"required"`
	ElectionTimeoutMin int    `yaml:"election_timeout_min" validate:"gte=0"`
	ElectionTimeoutMax int    `yaml:"election_timeout_max" validate:"gtefield=ElectionTimeoutMin"`
	HeartbeatInterval  int    `yaml:"heartbeat_interval" validate:"gt=0"`
}

// EventCfg brings a node or a link up or down at a simulation time. Exactly one of Node and Link is set.
type EventCfg struct {
	Time   int  `yaml:"time" validate:"gt=0"`
	Node   int  `yaml:"node,omitempty"`
	Link   int  `yaml:"link,omitempty"`
	Active bool `yaml:"active"`
}

// BuildCfg is everything needed to synthesize a topology and write the simulator config
type BuildCfg struct {
	Topology    TopologyKind `yaml:"topology"`
	Nodes       int          `yaml:"nodes" validate:"gt=0"`
	Seed        uint64       `yaml:"seed"`
	Symmetric   bool         `yaml:"symmetric,omitempty"`
	Bounds      Bounds       `yaml:"bounds"`
	Range       IntRange     `yaml:"range"`
	LinkBudget  IntRange     `yaml:"link_budget"`
	Hub         HubCfg       `yaml:"hub"`
	Termination int          `yaml:"termination" validate:"gt=0"`
	Consensus   ConsensusCfg `yaml:"consensus"`
	Events      []EventCfg   `yaml:"events,omitempty" validate:"dive"`
}

func DefaultBuildCfg() BuildCfg {
	return BuildCfg{
		Topology: Mesh,
		Nodes:    DefaultNodes,
		Seed:     DefaultSeed,
		Bounds: Bounds{
			MaxX: DefaultWidth,
			MaxY: DefaultLength,
			MaxZ: DefaultHeight,
		},
		Range:      IntRange{DefaultRangeMin, DefaultRangeMax},
		LinkBudget: IntRange{DefaultLinkBudgetMin, DefaultLinkBudgetMax},
		Hub: HubCfg{
			Range:      IntRange{DefaultHubRangeMin, DefaultHubRangeMax},
			LinkBudget: IntRange{DefaultHubLinkBudgetMin, DefaultHubLinkBudgetMax},
			Coverage:   DefaultCoverage,
		},
		Termination: DefaultTermination,
		Consensus: ConsensusCfg{
			Protocol:           DefaultProtocol,
			ElectionTimeoutMin: DefaultElectionMin,
			ElectionTimeoutMax: DefaultElectionMax,
			HeartbeatInterval:  DefaultHeartbeat,
		},
	}
}

// HubBudget resolves the zero value to the node count, the original generator's default
func (c *BuildCfg) HubBudget() int {
	if c.Hub.Budget == 0 {
		return c.Nodes
	}
	return c.Hub.Budget
}

// ReadBuildCfg loads a config file on top of the defaults
func ReadBuildCfg(path string) (*BuildCfg, error) {
	cfg := DefaultBuildCfg()
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func WriteBuildCfg(path string, cfg *BuildCfg) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
