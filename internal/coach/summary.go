package coach

import (
	"math"

	"github.com/jonathan/pitch-coach/internal/types"
)

// Summary is the dashboard view of progress
type Summary struct {
	Sessions     int
	AverageScore int
	// Delta is latest minus previous overall score; HasDelta is false with fewer than two sessions
	Delta    int
	HasDelta bool
	Stats    types.UserStats
}

// Summarize computes a Summary from history (newest first) and stats
func Summarize(history []types.PitchSession, stats types.UserStats) Summary {
	s := Summary{Sessions: len(history), Stats: stats}
	if len(history) == 0 {
		return s
	}

	total := 0
	for _, p := range history {
		total += p.Score.Overall
	}
	s.AverageScore = int(math.Round(float64(total) / float64(len(history))))

	if len(history) >= 2 {
		s.Delta = history[0].Score.Overall - history[1].Score.Overall
		s.HasDelta = true
	}
	return s
}

// Summary returns the dashboard view of the engine's current state
func (e *Engine) Summary() Summary {
	return Summarize(e.history, e.stats)
}
