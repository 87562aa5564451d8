package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/encodeous/topogen/core"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [nodes|heartbeat|election-max] [values]",
	Short: "Generate one simulator config per parameter value",
	Long: `Generates a series of configs that differ in one parameter, for example
  topogen sweep heartbeat 30:300:30 -d runs/
Run i uses seed+i. A manifest listing every run is written to the output directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		param, err := core.ParseSweepParam(args[0])
		if err != nil {
			return err
		}
		values, err := core.ParseSweepValues(args[1])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		log := newLogger("sweep")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := core.SweepOpts{
			Param:  param,
			Values: values,
		}
		opts.Dir, _ = cmd.Flags().GetString("dir")
		opts.Images, _ = cmd.Flags().GetBool("png")

		m, err := core.Sweep(ctx, *cfg, opts, log)
		if err != nil {
			return err
		}
		log.Info("sweep complete", "id", m.Id, "runs", len(m.Runs), "failed", m.Failed(), "dir", opts.Dir)
		if strict, _ := cmd.Flags().GetBool("strict"); strict && m.Failed() != 0 {
			return fmt.Errorf("%d of %d runs failed", m.Failed(), len(m.Runs))
		}
		return nil
	},
	GroupID: "gen",
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	addBuildFlags(sweepCmd)
	sweepCmd.Flags().StringP("dir", "d", "sweep", "output directory")
	sweepCmd.Flags().Bool("png", false, "render every topology next to its config")
	sweepCmd.Flags().Bool("strict", false, "exit with an error when any run fails")
}
