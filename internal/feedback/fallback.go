package feedback

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jonathan/pitch-coach/internal/types"
)

// Thresholds for the locally generated remarks
const (
	strongClarity    = 75
	strongConfidence = 75
	minConciseness   = 70
	fallbackSlowWPM  = 100
	fallbackFastWPM  = 180
)

// Diagnostic tags appended to fallback feedback
const (
	TagMissingKey       = "[API key missing]"
	TagConnectionFailed = "[API connection failed]"
	TagUnavailable      = "[AI unavailable]"
)

// fallbackBenefits is broader than the scoring benefit set
var fallbackBenefits = regexp.MustCompile(`(?i)\b(save|reduce|increase|improve|automate|faster|easier)\b`)

// Fallback builds deterministic coaching text from the score and transcript.
// It always returns at least one remark.
func Fallback(transcript string, score types.Score) string {
	remarks := make([]string, 0, 4)

	if score.Clarity >= strongClarity {
		remarks = append(remarks, "Strong clarity! Your pitch clearly communicated key benefits.")
	} else {
		remarks = append(remarks, "Focus on mentioning specific benefits like time savings, accuracy improvements, or cost reduction.")
	}

	switch {
	case score.Confidence >= strongConfidence:
		remarks = append(remarks, "Great pacing and delivery.")
	case score.WPM < fallbackSlowWPM:
		remarks = append(remarks, "Try speaking a bit faster - aim for 120-150 words per minute.")
	case score.WPM > fallbackFastWPM:
		remarks = append(remarks, "Slow down slightly for better comprehension.")
	}

	if score.Conciseness < minConciseness {
		remarks = append(remarks, "Aim to use the full 45-60 seconds to make a complete case.")
	}

	if !fallbackBenefits.MatchString(transcript) {
		remarks = append(remarks, "Add specific quantifiable benefits (e.g., 'saves 2 hours daily').")
	}

	return strings.Join(remarks, " ")
}

// tagFor returns the diagnostic tag for a failure
func tagFor(err error) string {
	var providerErr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return TagMissingKey
	case errors.As(err, &providerErr) && providerErr.Kind == KindConnection:
		return TagConnectionFailed
	default:
		return TagUnavailable
	}
}
