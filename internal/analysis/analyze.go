// Package analysis provides lexical and structural analysis of pitch transcripts.
package analysis

import (
	"math"
	"strings"

	"github.com/jonathan/pitch-coach/internal/scoring"
	"github.com/jonathan/pitch-coach/internal/types"
)

// Pacing thresholds in words per minute
const (
	slowPaceWPM = 100
	fastPaceWPM = 180
)

// trailingPunctuation is stripped from each token before matching
const trailingPunctuation = ".,!?;:\"')]"

// Analyzer counts word-list hits in a transcript. The zero value is not usable; see NewAnalyzer.
type Analyzer struct {
	Fillers   WordList
	Strong    WordList
	Weak      WordList
	Questions WordList
}

// NewAnalyzer returns an Analyzer with the default word lists
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Fillers:   FillerWords,
		Strong:    StrongWords,
		Weak:      WeakWords,
		Questions: QuestionWords,
	}
}

// Analyze runs the default Analyzer
func Analyze(transcript string, durationSeconds int) types.TranscriptAnalysis {
	return NewAnalyzer().Analyze(transcript, durationSeconds)
}

// Analyze computes the TranscriptAnalysis for a transcript spoken over durationSeconds (>= 1).
func (a *Analyzer) Analyze(transcript string, durationSeconds int) types.TranscriptAnalysis {
	tokens := Tokenize(transcript)
	wordCount := scoring.CountWords(transcript)
	wpm := scoring.WordsPerMinute(wordCount, durationSeconds)
	sentences := CountSentences(transcript)

	avg := 0.0
	if sentences > 0 {
		avg = math.Round(float64(wordCount)/float64(sentences)*10) / 10
	}

	return types.TranscriptAnalysis{
		WordCount:         wordCount,
		WPM:               wpm,
		FillerWords:       a.Fillers.Count(tokens),
		StrongWords:       a.Strong.Count(tokens),
		WeakWords:         a.Weak.Count(tokens),
		Questions:         a.Questions.Count(tokens),
		Sentences:         sentences,
		AvgSentenceLength: avg,
		Pacing:            ClassifyPacing(wpm),
	}
}

// Tokenize lower-cases the text, splits on whitespace and strips trailing punctuation from each token.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimRight(f, trailingPunctuation)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// CountSentences counts non-empty segments between '.', '!' and '?'
func CountSentences(text string) int {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// ClassifyPacing buckets a words-per-minute rate
func ClassifyPacing(wpm int) types.Pacing {
	switch {
	case wpm < slowPaceWPM:
		return types.PacingSlow
	case wpm > fastPaceWPM:
		return types.PacingFast
	default:
		return types.PacingGood
	}
}
