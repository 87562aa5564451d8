package cmd

import (
	"github.com/encodeous/topogen/render"
	"github.com/encodeous/topogen/topology"
	"github.com/spf13/cobra"
)

// the simulator config carries no positions, so draw rebuilds the topology from config and seed
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Render the topology a config and seed produce",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			panic(err)
		}
		log := newLogger("draw")
		t, err := topology.Build(*cfg, log)
		if err != nil {
			panic(err)
		}

		opts := render.DefaultOptions()
		opts.Title, _ = cmd.Flags().GetString("title")
		opts.HubRanges, _ = cmd.Flags().GetBool("ranges")
		out, _ := cmd.Flags().GetString("output")
		err = render.Save(t, out, opts)
		if err != nil {
			panic(err)
		}
		log.Info("rendered topology", "path", out, "nodes", len(t.Nodes), "links", len(t.Edges))
	},
	GroupID: "gen",
}

func init() {
	rootCmd.AddCommand(drawCmd)
	addBuildFlags(drawCmd)
	drawCmd.Flags().StringP("output", "o", "topology.png", "image path, the format follows the extension")
	drawCmd.Flags().String("title", "", "plot title")
	drawCmd.Flags().Bool("ranges", true, "outline the coverage area of every hub")
}
