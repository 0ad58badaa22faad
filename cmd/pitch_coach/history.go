package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/observability"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		deleteID string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or prune recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if deleteID != "" {
				if err := engine.DeleteSession(cmd.Context(), deleteID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "Deleted session %s\n", deleteID)
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(engine.History())
			}
			observability.NewPrinter(out).PrintHistory(engine.History(), limit)
			return nil
		},
	}

	cmd.Flags().StringVar(&deleteID, "delete", "", "Delete the session with this id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many sessions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sessions as JSON")
	return cmd
}
