package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/objections"
	"github.com/jonathan/pitch-coach/internal/observability"
	"github.com/jonathan/pitch-coach/internal/types"
)

func newObjectionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objections",
		Aliases: []string{"objection"},
		Short:   "List and manage objections",
	}
	cmd.AddCommand(
		newObjectionsListCmd(opts),
		newObjectionsAddCmd(opts),
		newObjectionsDeleteCmd(opts),
		newObjectionsImportCmd(opts),
	)
	return cmd
}

func newObjectionsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom objections (* marks the one being practiced)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			selectedID := 0
			if s := engine.Selected(); s != nil {
				selectedID = s.ID
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintObjections(engine.Catalog().All(), selectedID)
			return nil
		},
	}
}

func newObjectionsAddCmd(opts *rootOptions) *cobra.Command {
	var (
		title      string
		text       string
		difficulty string
		followUps  []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a custom objection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := engine.AddObjection(cmd.Context(), types.Objection{
				Title:         title,
				ObjectionText: text,
				Difficulty:    types.Difficulty(difficulty),
				FollowUps:     followUps,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", objections.String(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Short title")
	cmd.Flags().StringVar(&text, "text", "", "What the prospect says")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(types.DifficultyMedium), "Easy, Medium or Hard")
	cmd.Flags().StringArrayVar(&followUps, "follow-up", nil, "Scripted follow-up question (repeatable, asked in order)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newObjectionsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a custom objection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid objection id %q", args[0])
			}

			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := engine.DeleteObjection(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted objection #%d\n", id)
			return nil
		},
	}
}

func newObjectionsImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import custom objections from a YAML pack",
		Long: `Import custom objections from a YAML file of the form:

  objections:
    - title: Insurance Billing
      objection: Will this slow down my insurance claims?
      difficulty: Medium
      follow_ups:
        - Which clearinghouses do you support?

Either every objection is imported or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open objection pack: %w", err)
			}
			defer f.Close()

			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			added, err := engine.ImportObjections(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Imported %d objections\n", len(added))
			for _, o := range added {
				_, _ = fmt.Fprintf(out, "  %s\n", objections.String(o))
			}
			return nil
		},
	}
}
