package cmd

import (
	"github.com/encodeous/topogen/core"
	"github.com/encodeous/topogen/state"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Synthesize a topology and write the simulator config",
	Long: `Synthesizes a mesh or star topology from the build config and writes it as a Coracle
simulator config. Use "-o -" to print the config to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		log := newLogger("gen")

		if tracePath, _ := cmd.Flags().GetString("trace"); tracePath != "" {
			stop, err := core.StartTrace(tracePath)
			if err != nil {
				return err
			}
			defer stop()
		}

		opts := core.GenerateOpts{
			Stdout: cmd.OutOrStdout(),
		}
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Image, _ = cmd.Flags().GetString("png")
		opts.MetricsOut, _ = cmd.Flags().GetString("metrics-out")

		res, err := core.Generate(cfg, opts, log)
		if err != nil {
			return err
		}
		if opts.Output != "-" {
			log.Info("wrote simulator config",
				"path", opts.Output,
				"servers", len(res.Document.Servers()),
				"hubs", len(res.Document.Hubs()),
				"links", len(res.Document.Network.Links))
		}
		return nil
	},
	GroupID: "gen",
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addBuildFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", state.DefaultOutputPath, "simulator config output path")
	generateCmd.Flags().String("png", "", "render the topology to this image")
	generateCmd.Flags().String("metrics-out", "", "write build metrics in the prometheus textfile format")
	generateCmd.Flags().String("trace", "", "write a runtime execution trace")
}
