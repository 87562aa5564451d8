package cmd

import (
	"os"

	"github.com/encodeous/topogen/state"
	"github.com/spf13/cobra"
)

var (
	configPath = state.DefaultConfigPath
	verbose    = false
	logPath    = ""
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "topogen",
	Short: "Wireless network topology synthesizer",
	Long: `topogen places radio nodes in a bounded volume, links them under per-node capacity limits and
writes the resulting mesh or hub-spoke network as a Coracle simulator configuration.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cfg",
		Title: "Configuration",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "gen",
		Title: "Synthesis",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "build config, defaults are used when it does not exist")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "also append logs to this file")
}
