// Package gamification applies a completed session's score to the user's points, streak and badges.
package gamification

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jonathan/pitch-coach/internal/types"
)

// Badge names
const (
	BadgeHighScorer       = "High Scorer"
	BadgeWeekWarrior      = "Week Warrior"
	BadgeDedicatedLearner = "Dedicated Learner"
)

// Badge thresholds
const (
	highScoreThreshold = 90
	weekStreak         = 7
	dedicatedPractices = 10
)

// EventBadgeAwarded is the only achievement event type
const EventBadgeAwarded = "badge_awarded"

// Achievement is a newly unlocked badge
type Achievement struct {
	Type      string    `json:"type"`
	Badge     string    `json:"badge"`
	Timestamp time.Time `json:"timestamp"`
}

// badgeRule awards Badge when Earned holds for the updated stats
type badgeRule struct {
	Badge  string
	Earned func(next types.UserStats, score types.Score) bool
}

// badgeRules are evaluated in order; the last newly unlocked badge is surfaced.
var badgeRules = []badgeRule{
	{BadgeHighScorer, func(_ types.UserStats, s types.Score) bool { return s.Overall >= highScoreThreshold }},
	{BadgeWeekWarrior, func(n types.UserStats, _ types.Score) bool { return n.Streak >= weekStreak }},
	{BadgeDedicatedLearner, func(n types.UserStats, _ types.Score) bool { return n.TotalPractices >= dedicatedPractices }},
}

// PointsFor returns the points a session earns, round(overall/10)
func PointsFor(score types.Score) int {
	return int(math.Round(float64(score.Overall) / 10))
}

// DateOf truncates a timestamp to its calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Apply returns the stats after one completed session and the badge it unlocked, if any.
// The input stats are not modified.
//
// Any practice date different from the last one extends the streak by exactly one,
// no matter how many days were skipped.
func Apply(stats types.UserStats, score types.Score, today time.Time) (types.UserStats, *Achievement) {
	next := stats
	next.Badges = append([]string(nil), stats.Badges...)

	day := DateOf(today)
	if stats.LastPracticeDate == nil || !DateOf(*stats.LastPracticeDate).Equal(day) {
		next.Streak = stats.Streak + 1
		next.LastPracticeDate = &day
	}

	next.Points = stats.Points + PointsFor(score)
	next.TotalPractices = stats.TotalPractices + 1
	next.BestScore = max(stats.BestScore, score.Overall)

	var achievement *Achievement
	for _, rule := range badgeRules {
		if next.HasBadge(rule.Badge) || !rule.Earned(next, score) {
			continue
		}
		next.Badges = append(next.Badges, rule.Badge)
		achievement = &Achievement{Type: EventBadgeAwarded, Badge: rule.Badge, Timestamp: today}
	}

	return next, achievement
}

// StatsSaver persists the stats record
type StatsSaver interface {
	SaveStats(ctx context.Context, stats types.UserStats) error
}

// Tracker applies session results and persists them before returning.
type Tracker struct {
	saver StatsSaver
}

// NewTracker creates a Tracker writing through saver
func NewTracker(saver StatsSaver) *Tracker {
	return &Tracker{saver: saver}
}

// Record applies the score and saves the new stats. The updated stats are
// returned even when saving fails so the session can still be committed.
func (t *Tracker) Record(ctx context.Context, stats types.UserStats, score types.Score, today time.Time) (types.UserStats, *Achievement, error) {
	next, achievement := Apply(stats, score, today)
	if err := t.saver.SaveStats(ctx, next); err != nil {
		return next, achievement, fmt.Errorf("failed to save stats: %w", err)
	}
	return next, achievement, nil
}
