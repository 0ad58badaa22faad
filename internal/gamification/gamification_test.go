package gamification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/pitch-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	d := DateOf(t)
	return &d
}

func TestApply_FirstSession(t *testing.T) {
	next, achievement := Apply(types.UserStats{}, types.Score{Overall: 43}, day(2024, 3, 1))

	assert.Equal(t, 1, next.Streak)
	assert.Equal(t, 4, next.Points)
	assert.Equal(t, 1, next.TotalPractices)
	assert.Equal(t, 43, next.BestScore)
	require.NotNil(t, next.LastPracticeDate)
	assert.Equal(t, DateOf(day(2024, 3, 1)), *next.LastPracticeDate)
	assert.Empty(t, next.Badges)
	assert.Nil(t, achievement)
}

func TestApply_StreakLaw(t *testing.T) {
	last := day(2024, 3, 1)
	stats := types.UserStats{Streak: 3, LastPracticeDate: datePtr(last)}

	tests := []struct {
		name   string
		today  time.Time
		streak int
	}{
		{"same day later hour", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), 3},
		{"next day", day(2024, 3, 2), 4},
		{"two day gap still plus one", day(2024, 3, 4), 4},
		{"far future", day(2031, 12, 25), 4},
		{"earlier date", day(2023, 1, 1), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := Apply(stats, types.Score{Overall: 50}, tt.today)
			assert.Equal(t, tt.streak, next.Streak)
		})
	}
}

func TestApply_SameDayKeepsLastPracticeDate(t *testing.T) {
	last := datePtr(day(2024, 3, 1))
	next, _ := Apply(types.UserStats{Streak: 1, LastPracticeDate: last}, types.Score{}, day(2024, 3, 1))
	assert.Equal(t, last, next.LastPracticeDate)
}

func TestApply_PointsRounding(t *testing.T) {
	tests := []struct {
		overall int
		points  int
	}{
		{0, 0}, {4, 0}, {5, 1}, {44, 4}, {45, 5}, {95, 10}, {100, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.points, PointsFor(types.Score{Overall: tt.overall}), "overall=%d", tt.overall)
	}
}

func TestApply_BestScoreNeverDecreases(t *testing.T) {
	next, _ := Apply(types.UserStats{BestScore: 80}, types.Score{Overall: 60}, day(2024, 3, 1))
	assert.Equal(t, 80, next.BestScore)
}

func TestApply_HighScorerOnce(t *testing.T) {
	stats, achievement := Apply(types.UserStats{}, types.Score{Overall: 95}, day(2024, 3, 1))
	require.NotNil(t, achievement)
	assert.Equal(t, BadgeHighScorer, achievement.Badge)
	assert.Equal(t, EventBadgeAwarded, achievement.Type)

	stats, achievement = Apply(stats, types.Score{Overall: 99}, day(2024, 3, 1))
	assert.Nil(t, achievement)
	assert.Equal(t, []string{BadgeHighScorer}, stats.Badges)
}

func TestApply_DedicatedLearnerCrossingTen(t *testing.T) {
	stats := types.UserStats{TotalPractices: 9, LastPracticeDate: datePtr(day(2024, 3, 1)), Streak: 2}

	stats, achievement := Apply(stats, types.Score{Overall: 60}, day(2024, 3, 1))
	require.NotNil(t, achievement)
	assert.Equal(t, BadgeDedicatedLearner, achievement.Badge)
	assert.Equal(t, []string{BadgeDedicatedLearner}, stats.Badges)

	// A later high score unlocks only its own badge
	stats, achievement = Apply(stats, types.Score{Overall: 95}, day(2024, 3, 1))
	require.NotNil(t, achievement)
	assert.Equal(t, BadgeHighScorer, achievement.Badge)
	assert.Equal(t, []string{BadgeDedicatedLearner, BadgeHighScorer}, stats.Badges)

	_, achievement = Apply(stats, types.Score{Overall: 95}, day(2024, 3, 1))
	assert.Nil(t, achievement)
}

func TestApply_SimultaneousBadgesSurfaceLast(t *testing.T) {
	stats := types.UserStats{Streak: 6, TotalPractices: 9, LastPracticeDate: datePtr(day(2024, 3, 1))}

	next, achievement := Apply(stats, types.Score{Overall: 92}, day(2024, 3, 2))

	assert.Equal(t, []string{BadgeHighScorer, BadgeWeekWarrior, BadgeDedicatedLearner}, next.Badges)
	require.NotNil(t, achievement)
	assert.Equal(t, BadgeDedicatedLearner, achievement.Badge)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	badges := make([]string, 1, 4)
	badges[0] = BadgeWeekWarrior
	stats := types.UserStats{Badges: badges, TotalPractices: 9}

	next, _ := Apply(stats, types.Score{Overall: 95}, day(2024, 3, 1))

	assert.Equal(t, []string{BadgeWeekWarrior}, stats.Badges)
	assert.Equal(t, 0, stats.TotalPractices)
	assert.Len(t, next.Badges, 3)
	assert.Empty(t, badges[:2][1], "backing array must not be shared")
}

type recordingSaver struct {
	saved []types.UserStats
	err   error
}

func (r *recordingSaver) SaveStats(_ context.Context, stats types.UserStats) error {
	r.saved = append(r.saved, stats)
	return r.err
}

func TestTracker_RecordPersists(t *testing.T) {
	saver := &recordingSaver{}
	tracker := NewTracker(saver)

	next, _, err := tracker.Record(context.Background(), types.UserStats{}, types.Score{Overall: 70}, day(2024, 3, 1))

	require.NoError(t, err)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, next, saver.saved[0])
}

func TestTracker_RecordReturnsStatsOnSaveFailure(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}

	next, _, err := NewTracker(saver).Record(context.Background(), types.UserStats{}, types.Score{Overall: 70}, day(2024, 3, 1))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save stats")
	assert.Equal(t, 1, next.TotalPractices)
}
