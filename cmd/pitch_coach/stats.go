package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/observability"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show points, streak, badges and score trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(engine.Summary())
			return nil
		},
	}
}
