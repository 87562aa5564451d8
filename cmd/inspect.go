package cmd

import (
	"fmt"

	"github.com/encodeous/topogen/coracle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect [config.json]",
	Aliases: []string{"i"},
	Short:   "Summarizes a written simulator config",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := coracle.ReadFile(args[0])
		if err != nil {
			panic(err)
		}
		out, err := yaml.Marshal(doc.Summarize())
		if err != nil {
			panic(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	},
	GroupID: "gen",
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
