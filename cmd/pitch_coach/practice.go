package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/coach"
	"github.com/jonathan/pitch-coach/internal/feedback"
	"github.com/jonathan/pitch-coach/internal/gamification"
	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/observability"
	"github.com/jonathan/pitch-coach/internal/types"
)

// practiceResult is the --json form of a completed session
type practiceResult struct {
	Session        types.PitchSession        `json:"session"`
	Stats          types.UserStats           `json:"stats"`
	PointsEarned   int                       `json:"points_earned"`
	Achievement    *gamification.Achievement `json:"achievement,omitempty"`
	NextPrompt     string                    `json:"next_prompt,omitempty"`
	FeedbackSource feedback.Source           `json:"feedback_source"`
	Provider       llm.Provider              `json:"provider,omitempty"`
}

func newPracticeCmd(opts *rootOptions) *cobra.Command {
	var (
		objectionID    int
		transcriptPath string
		duration       int
		restart        bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Score a transcribed answer to an objection",
		Long: `Score a transcribed answer and record it in history.

Choosing an objection with --objection starts its conversation; later runs without --objection
answer its scripted follow-ups in order. Use --objection 0 for general practice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transcript, err := readTranscript(cmd, transcriptPath)
			if err != nil {
				return err
			}

			engine, closeStore, err := opts.openEngine(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx := cmd.Context()
			if cmd.Flags().Changed("objection") {
				current := engine.Selected()
				if restart || current == nil || current.ID != objectionID {
					if err := engine.SelectObjection(ctx, objectionID); err != nil {
						return err
					}
				}
			}

			outcome, err := engine.Complete(ctx, types.Recording{Transcript: transcript, DurationSeconds: duration})
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			if outcome.PersistErr != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: session was scored but not fully saved: %v\n", outcome.PersistErr)
			}
			if outcome.Feedback.IsMissingCredential() {
				_, _ = fmt.Fprintln(stderr, "Tip: set GROQ_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY for AI feedback.")
			}

			if asJSON {
				return writePracticeJSON(cmd.OutOrStdout(), outcome)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().IntVarP(&objectionID, "objection", "o", 0, "Objection id to answer (0 for general practice)")
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Transcript file, or - to read stdin")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Speaking time in seconds")
	cmd.Flags().BoolVar(&restart, "restart", false, "Restart the objection's follow-up conversation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func readTranscript(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

func writePracticeJSON(w io.Writer, o *coach.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(practiceResult{
		Session:        o.Session,
		Stats:          o.Stats,
		PointsEarned:   o.PointsEarned,
		Achievement:    o.Achievement,
		NextPrompt:     o.NextPrompt,
		FeedbackSource: o.Feedback.Source,
		Provider:       o.Feedback.Provider,
	})
}
