// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pitch-coach/internal/coach"
	"github.com/jonathan/pitch-coach/internal/gamification"
	"github.com/jonathan/pitch-coach/internal/objections"
	"github.com/jonathan/pitch-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// contentWidth is the usable width inside a box
	contentWidth = boxWidth - 4
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, contentWidth)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to contentWidth runes
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= contentWidth {
		return s
	}
	return s + strings.Repeat(" ", contentWidth-n)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int, indent string) string {
	var sb strings.Builder
	line := 0
	for i, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		switch {
		case i == 0:
			sb.WriteString(indent)
			line = len(indent)
		case line+1+n > width:
			sb.WriteString("\n")
			sb.WriteString(indent)
			line = len(indent)
		default:
			sb.WriteString(" ")
			line++
		}
		sb.WriteString(word)
		line += n
	}
	return sb.String()
}

// bar renders a 0-100 score as a 20 cell bar
func bar(score int) string {
	filled := max(0, min(score, 100)) / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// PrintSession outputs the scores and transcript analysis of a session.
func (p *Printer) PrintSession(s *types.PitchSession) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Objection: %s\n", s.Objection.Title))
	sb.WriteString(fmt.Sprintf("Duration:  %ds, %d words, %d wpm\n", s.DurationSeconds, s.Score.WordCount, s.Score.WPM))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall      %3d %s\n", s.Score.Overall, bar(s.Score.Overall)))
	sb.WriteString(fmt.Sprintf("Clarity      %3d %s\n", s.Score.Clarity, bar(s.Score.Clarity)))
	sb.WriteString(fmt.Sprintf("Confidence   %3d %s\n", s.Score.Confidence, bar(s.Score.Confidence)))
	sb.WriteString(fmt.Sprintf("Conciseness  %3d %s\n", s.Score.Conciseness, bar(s.Score.Conciseness)))
	sb.WriteString("\n")

	a := s.TranscriptAnalysis
	sb.WriteString(fmt.Sprintf("Pacing: %s   Sentences: %d (avg %.1f words)\n", a.Pacing, a.Sentences, a.AvgSentenceLength))
	sb.WriteString(fmt.Sprintf("Fillers: %d   Strong: %d   Weak: %d   Questions: %d", a.FillerWords, a.StrongWords, a.WeakWords, a.Questions))

	p.printBox("PITCH SCORE", sb.String())
}

// PrintWeaknesses outputs the weaknesses of a session, most severe first in rule order.
func (p *Printer) PrintWeaknesses(weaknesses []types.Weakness) {
	if len(weaknesses) == 0 {
		return
	}

	var sb strings.Builder
	for i, w := range weaknesses {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(string(w.Severity)), w.Type))
		sb.WriteString(wrap(w.Description, contentWidth, "  "))
		sb.WriteString("\n")
		sb.WriteString(wrap("→ "+w.Suggestion, contentWidth, "  "))
		if i < len(weaknesses)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("WEAKNESSES", sb.String())
}

// PrintTips outputs improvement tips as a numbered list.
func (p *Printer) PrintTips(tips []string) {
	if len(tips) == 0 {
		return
	}

	var sb strings.Builder
	for i, tip := range tips {
		lines := strings.Split(wrap(tip, contentWidth-4, "    "), "\n")
		lines[0] = fmt.Sprintf("%2d. %s", i+1, strings.TrimLeft(lines[0], " "))
		sb.WriteString(strings.Join(lines, "\n"))
		if i < len(tips)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("IMPROVEMENT TIPS", sb.String())
}

// PrintFeedback outputs the coaching feedback text.
func (p *Printer) PrintFeedback(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.printBox("AI COACH FEEDBACK", wrap(text, contentWidth, ""))
}

// PrintOutcome outputs everything produced by a completed session.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(o *coach.Outcome) {
	if o == nil {
		return
	}

	p.PrintSession(&o.Session)
	p.PrintWeaknesses(o.Session.Weaknesses)
	p.PrintTips(o.Session.ImprovementTips)
	p.PrintFeedback(o.Session.AIFeedback)

	fmt.Fprintf(p.out, "+%d points (total %d, streak %d)\n", o.PointsEarned, o.Stats.Points, o.Stats.Streak)
	p.PrintAchievement(o.Achievement)
	if o.NextPrompt != "" {
		fmt.Fprintf(p.out, "\nFollow-up: %s\n", o.NextPrompt)
	}
}

// PrintAchievement announces a newly unlocked badge.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAchievement(a *gamification.Achievement) {
	if a == nil {
		return
	}
	fmt.Fprintf(p.out, "🏆 Badge unlocked: %s\n", a.Badge)
}

// PrintSummary outputs the progress dashboard.
func (p *Printer) PrintSummary(s coach.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sessions:        %d\n", s.Sessions))
	sb.WriteString(fmt.Sprintf("Average score:   %d\n", s.AverageScore))
	if s.HasDelta {
		sb.WriteString(fmt.Sprintf("Last change:     %+d\n", s.Delta))
	} else {
		sb.WriteString("Last change:     0\n")
	}
	sb.WriteString(fmt.Sprintf("Best score:      %d\n", s.Stats.BestScore))
	sb.WriteString(fmt.Sprintf("Points:          %d\n", s.Stats.Points))
	sb.WriteString(fmt.Sprintf("Streak:          %d\n", s.Stats.Streak))
	sb.WriteString(fmt.Sprintf("Total practices: %d\n", s.Stats.TotalPractices))
	if s.Stats.LastPracticeDate != nil {
		sb.WriteString(fmt.Sprintf("Last practice:   %s\n", s.Stats.LastPracticeDate.Format("2006-01-02")))
	}
	if len(s.Stats.Badges) > 0 {
		sb.WriteString(fmt.Sprintf("Badges:          %s", strings.Join(s.Stats.Badges, ", ")))
	} else {
		sb.WriteString("Badges:          none yet")
	}

	p.printBox("PROGRESS", sb.String())
}

// PrintHistory outputs recent sessions, newest first.
func (p *Printer) PrintHistory(history []types.PitchSession, limit int) {
	if len(history) == 0 {
		p.printBox("PITCH HISTORY", "No sessions yet.")
		return
	}
	if limit <= 0 {
		limit = len(history)
	}

	var sb strings.Builder
	count := min(len(history), limit)
	for i := 0; i < count; i++ {
		s := history[i]
		sb.WriteString(fmt.Sprintf("%s  %3d  %s\n", s.Timestamp.Local().Format("Jan 2 15:04"), s.Score.Overall, s.Objection.Title))
		sb.WriteString(fmt.Sprintf("  id %s", s.ID))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(history) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(history)-count))
	}

	p.printBox("PITCH HISTORY", sb.String())
}

// PrintObjections outputs the objection catalog grouped as built-in then custom.
func (p *Printer) PrintObjections(all []types.Objection, selectedID int) {
	var sb strings.Builder
	for i, o := range all {
		marker := " "
		if o.ID == selectedID {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%s", marker, objections.String(o)))
		if n := len(o.FollowUps); n > 0 {
			sb.WriteString(fmt.Sprintf(" (+%d follow-ups)", n))
		}
		if i < len(all)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("OBJECTIONS", sb.String())
}

// PrintProgress outputs one evaluation step in verbose mode.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(e coach.ProgressEvent) {
	fmt.Fprintf(p.out, "[VERBOSE] %-12s %s\n", e.Step, e.Message)
}
