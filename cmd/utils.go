package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/encodeous/topogen/core"
	"github.com/encodeous/topogen/state"
	"github.com/spf13/cobra"
)

// addBuildFlags registers the overrides applied on top of the config file
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("topology", "t", string(state.Mesh), "topology kind, mesh or star")
	cmd.Flags().IntP("nodes", "n", state.DefaultNodes, "number of nodes to place")
	cmd.Flags().Uint64("seed", state.DefaultSeed, "random seed, equal seeds give equal topologies")
	cmd.Flags().Bool("symmetric", false, "require both radii to cover a neighbor and consume both budgets per link")
}

// loadConfig reads the config file, or the defaults when it is absent, and applies the flags that were set
func loadConfig(cmd *cobra.Command) (*state.BuildCfg, error) {
	var cfg *state.BuildCfg
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = state.ReadBuildCfg(configPath)
		if err != nil {
			return nil, err
		}
	} else if cmd.Flags().Changed("config") {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	} else {
		def := state.DefaultBuildCfg()
		cfg = &def
	}

	flags := cmd.Flags()
	if flags.Changed("topology") {
		v, _ := flags.GetString("topology")
		kind, err := state.ParseTopologyKind(v)
		if err != nil {
			return nil, err
		}
		cfg.Topology = kind
	}
	if flags.Changed("nodes") {
		cfg.Nodes, _ = flags.GetInt("nodes")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("symmetric") {
		cfg.Symmetric, _ = flags.GetBool("symmetric")
	}
	return cfg, nil
}

func newLogger(prefix string) *slog.Logger {
	logger, err := core.NewLogger(core.LevelOf(verbose), prefix, logPath)
	if err != nil {
		panic(err)
	}
	return logger
}
