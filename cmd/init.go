package cmd

import (
	"fmt"
	"os"

	"github.com/encodeous/topogen/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a build config interactively",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := state.DefaultBuildCfg()
		if useDefaults, _ := cmd.Flags().GetBool("defaults"); !useDefaults {
			promptBuildCfg(&cfg)
		}
		err := state.BuildConfigValidator(&cfg)
		if err != nil {
			panic(err)
		}

		out, err := yaml.Marshal(&cfg)
		if err != nil {
			panic(err)
		}
		path := configPath
		if !cmd.Flags().Changed("config") {
			path = safeSaveFile(path, "build config")
		}
		err = os.WriteFile(path, out, 0644)
		if err != nil {
			panic(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	},
	GroupID: "cfg",
}

func promptBuildCfg(cfg *state.BuildCfg) {
	cfg.Topology = promptTopology(cfg.Topology)
	cfg.Nodes = promptDefaultInt("Nodes", cfg.Nodes, state.PositiveIntValidator)
	cfg.Seed = uint64(promptDefaultInt("Seed", int(cfg.Seed), state.NonNegativeIntValidator))

	fmt.Println("\nSimulation volume")
	cfg.Bounds.MaxX = promptDefaultInt("Width", cfg.Bounds.MaxX, state.PositiveIntValidator)
	cfg.Bounds.MaxY = promptDefaultInt("Length", cfg.Bounds.MaxY, state.PositiveIntValidator)
	cfg.Bounds.MaxZ = promptDefaultInt("Height", cfg.Bounds.MaxZ, state.NonNegativeIntValidator)

	fmt.Println("\nNodes")
	cfg.Range = promptRange("Range", cfg.Range)
	if cfg.Topology == state.Mesh {
		cfg.LinkBudget = promptRange("Link budget", cfg.LinkBudget)
	} else {
		fmt.Println("\nHubs")
		cfg.Hub.Range = promptRange("Hub range", cfg.Hub.Range)
		cfg.Hub.LinkBudget = promptRange("Hub link budget", cfg.Hub.LinkBudget)
		cfg.Hub.Budget = promptDefaultInt("Max hubs (0 for the node count)", cfg.Hub.Budget, state.NonNegativeIntValidator)
		cfg.Hub.Coverage = float64(promptDefaultInt("Coverage %", int(cfg.Hub.Coverage), state.PercentValidator))
	}

	fmt.Println("\nConsensus")
	cfg.Consensus.Protocol = promptDefaultStr("Protocol", cfg.Consensus.Protocol, nil)
	election := promptRange("Election timeout", state.IntRange{Min: cfg.Consensus.ElectionTimeoutMin, Max: cfg.Consensus.ElectionTimeoutMax})
	cfg.Consensus.ElectionTimeoutMin = election.Min
	cfg.Consensus.ElectionTimeoutMax = election.Max
	cfg.Consensus.HeartbeatInterval = promptDefaultInt("Heartbeat interval", cfg.Consensus.HeartbeatInterval, state.PositiveIntValidator)
	cfg.Termination = promptDefaultInt("Termination", cfg.Termination, state.PositiveIntValidator)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("defaults", false, "write the defaults without prompting")
}
