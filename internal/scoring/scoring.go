// Package scoring turns a transcribed pitch and its duration into clarity, confidence and conciseness scores.
package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pitch-coach/internal/types"
)

// maxSubScore caps every sub-score
const maxSubScore = 100

// Clarity bonuses
const (
	clarityMediumLength = 100 // chars
	clarityLongLength   = 200 // chars
	clarityBonus        = 25
)

// Confidence bonuses
const (
	confidenceLength       = 150 // chars
	confidenceLengthBonus  = 30
	confidenceIdealWPMMin  = 120
	confidenceIdealWPMMax  = 160
	confidenceIdealBonus   = 40
	confidenceSlowWPMMin   = 100
	confidenceSlowBonus    = 20
	confidenceFluencyBonus = 30
)

// Conciseness bonuses
const (
	idealDurationMin   = 45
	idealDurationMax   = 60
	shortDurationMin   = 30
	idealDurationBonus = 50
	shortDurationBonus = 30
	tooShortBonus      = 20
	idealWordsMin      = 80
	idealWordsMax      = 150
	idealWordsBonus    = 50
)

// Whole-word, case-insensitive keyword sets
var (
	benefitWords    = regexp.MustCompile(`(?i)\b(save|reduce|increase|improve|automate)\b`)
	domainWords     = regexp.MustCompile(`(?i)\b(dentist|dental|practice|patient|documentation)\b`)
	disfluencyWords = regexp.MustCompile(`(?i)\b(um|uh|like|you know)\b`)
)

// Score computes the Score for a transcript spoken over durationSeconds.
// Callers must pass durationSeconds >= 1 and a non-empty transcript.
func Score(transcript string, durationSeconds int) types.Score {
	wordCount := CountWords(transcript)
	wpm := WordsPerMinute(wordCount, durationSeconds)
	length := utf8.RuneCountInString(transcript)

	clarity := computeClarity(transcript, length)
	confidence := computeConfidence(transcript, length, wpm)
	conciseness := computeConciseness(durationSeconds, wordCount)

	return types.Score{
		Clarity:     clarity,
		Confidence:  confidence,
		Conciseness: conciseness,
		Overall:     int(math.Round(float64(clarity+confidence+conciseness) / 3)),
		WordCount:   wordCount,
		WPM:         wpm,
	}
}

// CountWords counts whitespace-delimited tokens in the trimmed transcript, never less than 1.
func CountWords(transcript string) int {
	n := len(strings.Fields(transcript))
	if n == 0 {
		return 1
	}
	return n
}

// WordsPerMinute returns round(wordCount / durationSeconds * 60)
func WordsPerMinute(wordCount, durationSeconds int) int {
	if durationSeconds < 1 {
		durationSeconds = 1
	}
	return int(math.Round(float64(wordCount) / float64(durationSeconds) * 60))
}

func computeClarity(text string, length int) int {
	score := 0
	if length > clarityMediumLength {
		score += clarityBonus
	}
	if length > clarityLongLength {
		score += clarityBonus
	}
	if benefitWords.MatchString(text) {
		score += clarityBonus
	}
	if domainWords.MatchString(text) {
		score += clarityBonus
	}
	return min(score, maxSubScore)
}

func computeConfidence(text string, length, wpm int) int {
	score := 0
	if length > confidenceLength {
		score += confidenceLengthBonus
	}
	if wpm >= confidenceIdealWPMMin && wpm <= confidenceIdealWPMMax {
		score += confidenceIdealBonus
	} else if wpm >= confidenceSlowWPMMin && wpm < confidenceIdealWPMMin {
		score += confidenceSlowBonus
	}
	if !disfluencyWords.MatchString(text) {
		score += confidenceFluencyBonus
	}
	return min(score, maxSubScore)
}

func computeConciseness(durationSeconds, wordCount int) int {
	score := 0
	switch {
	case durationSeconds >= idealDurationMin && durationSeconds <= idealDurationMax:
		score += idealDurationBonus
	case durationSeconds >= shortDurationMin && durationSeconds < idealDurationMin:
		score += shortDurationBonus
	case durationSeconds < shortDurationMin:
		score += tooShortBonus
	}
	if wordCount >= idealWordsMin && wordCount <= idealWordsMax {
		score += idealWordsBonus
	}
	return min(score, maxSubScore)
}
