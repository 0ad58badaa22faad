// Package coaching turns scores and transcript analysis into weaknesses and improvement tips.
package coaching

import (
	"fmt"

	"github.com/jonathan/pitch-coach/internal/types"
)

// Weakness thresholds
const (
	lowSubScore            = 60
	weaknessFillerRatio    = 0.08
	minStrongWordsWeakness = 2
)

// Input is everything the rule engine looks at for one session
type Input struct {
	Analysis       types.TranscriptAnalysis
	Score          types.Score
	ObjectionTitle string
}

// fillerRatio returns filler words as a fraction of all words
func (in Input) fillerRatio() float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	return float64(in.Analysis.FillerWords) / float64(in.Analysis.WordCount)
}

// weakRatio returns hedge words as a fraction of all words
func (in Input) weakRatio() float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	return float64(in.Analysis.WeakWords) / float64(in.Analysis.WordCount)
}

// IdentifyWeaknesses evaluates every weakness rule independently and returns
// the triggered ones in rule order.
func IdentifyWeaknesses(in Input) []types.Weakness {
	weaknesses := make([]types.Weakness, 0)

	if in.Score.Clarity < lowSubScore {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessClarity,
			Severity:    types.SeverityHigh,
			Description: fmt.Sprintf("Clarity scored %d/100: the pitch did not clearly state a concrete benefit.", in.Score.Clarity),
			Suggestion:  "Name one specific outcome for the practice, such as hours saved per day or fewer charting errors.",
		})
	}

	if in.Score.Confidence < lowSubScore {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessConfidence,
			Severity:    types.SeverityHigh,
			Description: fmt.Sprintf("Confidence scored %d/100: delivery sounded hesitant or rushed.", in.Score.Confidence),
			Suggestion:  "Speak at 120-160 words per minute and replace hesitations with a short pause.",
		})
	}

	if in.Score.Conciseness < lowSubScore {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessConciseness,
			Severity:    types.SeverityMedium,
			Description: fmt.Sprintf("Conciseness scored %d/100: the answer was outside the 45-60 second, 80-150 word window.", in.Score.Conciseness),
			Suggestion:  "Aim for a 45-60 second answer of roughly 80-150 words.",
		})
	}

	if ratio := in.fillerRatio(); ratio > weaknessFillerRatio {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessFillerWords,
			Severity:    types.SeverityMedium,
			Description: fmt.Sprintf("%d filler words (%.0f%% of the pitch).", in.Analysis.FillerWords, ratio*100),
			Suggestion:  "Practice pausing silently instead of saying um, uh, like or so.",
		})
	}

	if in.Analysis.StrongWords < minStrongWordsWeakness {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessWordChoice,
			Severity:    types.SeverityMedium,
			Description: fmt.Sprintf("Only %d strong, outcome-focused words.", in.Analysis.StrongWords),
			Suggestion:  "Use words like save, reduce, improve, proven and secure to anchor the value.",
		})
	}

	if in.Analysis.Pacing != types.PacingGood {
		weaknesses = append(weaknesses, types.Weakness{
			Type:        types.WeaknessPacing,
			Severity:    types.SeverityLow,
			Description: fmt.Sprintf("Pacing was %s at %d words per minute.", in.Analysis.Pacing, in.Analysis.WPM),
			Suggestion:  pacingAdvice(in.Analysis.Pacing),
		})
	}

	return weaknesses
}

func pacingAdvice(p types.Pacing) string {
	if p == types.PacingSlow {
		return "Pick up the pace slightly; aim for 120-150 words per minute."
	}
	return "Slow down so the dentist can follow; aim for 120-150 words per minute."
}
