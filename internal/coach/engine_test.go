package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/pitch-coach/internal/feedback"
	"github.com/jonathan/pitch-coach/internal/gamification"
	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/objections"
	"github.com/jonathan/pitch-coach/internal/records"
	"github.com/jonathan/pitch-coach/internal/store"
	"github.com/jonathan/pitch-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioTranscript = "Our tool will save your practice two hours daily on charting"

type stubFeedback struct {
	requests []feedback.Request
	text     string
}

func (s *stubFeedback) Request(_ context.Context, req feedback.Request) feedback.Result {
	s.requests = append(s.requests, req)
	return feedback.Result{Text: s.text, Source: feedback.SourceAI, Provider: llm.ProviderGroq}
}

type fixture struct {
	engine   *Engine
	store    store.Store
	repo     *records.Repository
	feedback *stubFeedback
	clock    time.Time
	ids      int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.NewStore(store.StoreTypeMemory)
	require.NoError(t, err)

	f := &fixture{
		store:    s,
		repo:     records.New(s, records.MaxHistory),
		feedback: &stubFeedback{text: "Solid answer."},
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.engine = f.newEngine(t, f.feedback)
	return f
}

func (f *fixture) newEngine(t *testing.T, provider FeedbackProvider) *Engine {
	t.Helper()
	e, err := New(Options{
		Repository: f.repo,
		Feedback:   provider,
		Now:        func() time.Time { return f.clock },
		NewID: func() (string, error) {
			f.ids++
			return fmt.Sprintf("session-%03d", f.ids), nil
		},
	})
	require.NoError(t, err)
	require.NoError(t, e.Load(context.Background()))
	return e
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{Feedback: &stubFeedback{}})
	assert.Error(t, err)

	s, _ := store.NewStore(store.StoreTypeMemory)
	_, err = New(Options{Repository: records.New(s, 0)})
	assert.Error(t, err)
}

func TestEngine_NotLoaded(t *testing.T) {
	s, _ := store.NewStore(store.StoreTypeMemory)
	e, err := New(Options{Repository: records.New(s, 0), Feedback: &stubFeedback{}})
	require.NoError(t, err)

	_, err = e.Complete(context.Background(), types.Recording{Transcript: "hi", DurationSeconds: 5})
	assert.True(t, errors.Is(err, ErrNotLoaded))
}

func TestComplete_ScenarioSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	outcome, err := f.engine.Complete(ctx, types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10, AudioRef: "blob:1"})
	require.NoError(t, err)
	require.NoError(t, outcome.PersistErr)

	session := outcome.Session
	assert.Equal(t, "session-001", session.ID)
	assert.Equal(t, f.clock, session.Timestamp)
	// Keyword bonuses only; too short for length, pace or duration bonuses.
	assert.Equal(t, types.Score{Clarity: 50, Confidence: 30, Conciseness: 20, Overall: 33, WordCount: 11, WPM: 66}, session.Score)
	assert.Equal(t, objections.GeneralPracticeTitle, session.Objection.Title)
	assert.Equal(t, "Solid answer.", session.AIFeedback)
	assert.NotEmpty(t, session.Weaknesses)
	assert.NotEmpty(t, session.ImprovementTips)
	assert.Equal(t, "blob:1", session.AudioRef)

	assert.Equal(t, 3, outcome.PointsEarned)
	assert.Equal(t, 3, outcome.Stats.Points)
	assert.Equal(t, 1, outcome.Stats.Streak)
	assert.Nil(t, outcome.Achievement)
	assert.Empty(t, outcome.NextPrompt)

	require.Len(t, f.feedback.requests, 1)
	assert.Equal(t, objections.GeneralPracticeText, f.feedback.requests[0].ObjectionText)

	// Everything was persisted
	history, err := f.repo.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, session.ID, history[0].ID)
	assert.Empty(t, history[0].AudioRef)

	stats, err := f.repo.LoadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Points)
}

func TestComplete_NormalizesRecording(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.engine.Complete(context.Background(), types.Recording{Transcript: "   ", DurationSeconds: 0})
	require.NoError(t, err)

	assert.Equal(t, PlaceholderTranscript, outcome.Session.Transcript)
	assert.Equal(t, 1, outcome.Session.DurationSeconds)
}

func TestComplete_VeryLongRecording(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.engine.Complete(context.Background(), types.Recording{Transcript: "a long talk", DurationSeconds: 4000})
	require.NoError(t, err)

	assert.Equal(t, 4000, outcome.Session.DurationSeconds)
	assert.Equal(t, 0, outcome.Session.Score.WPM)
	assert.GreaterOrEqual(t, outcome.Session.Score.Overall, 0)
	assert.LessOrEqual(t, outcome.Session.Score.Overall, 100)
	require.Len(t, f.engine.History(), 1)
	assert.Equal(t, 1, f.engine.Stats().TotalPractices)

	// The stored record reloads rather than being dropped as malformed
	reloaded := f.newEngine(t, f.feedback)
	require.Len(t, reloaded.History(), 1)
	assert.Equal(t, 4000, reloaded.History()[0].DurationSeconds)
}

func TestComplete_NegativeDurationRaisedToOne(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.engine.Complete(context.Background(), types.Recording{Transcript: "short answer", DurationSeconds: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Session.DurationSeconds)
	assert.Equal(t, 120, outcome.Session.Score.WPM)
}

func TestComplete_HistoryBound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		_, err := f.engine.Complete(ctx, types.Recording{Transcript: scenarioTranscript, DurationSeconds: 30})
		require.NoError(t, err)
		f.clock = f.clock.Add(time.Minute)
	}

	history := f.engine.History()
	require.Len(t, history, records.MaxHistory)
	assert.Equal(t, "session-023", history[0].ID)
	assert.Equal(t, "session-004", history[len(history)-1].ID)
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].Timestamp.After(history[i].Timestamp))
	}

	stored, err := f.repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, records.MaxHistory)
	assert.Equal(t, 23, f.engine.Stats().TotalPractices)
}

func TestComplete_FallbackWithoutCredentials(t *testing.T) {
	f := newFixture(t)
	e := f.newEngine(t, feedback.NewCoordinator(llm.DefaultConfig()))

	outcome, err := e.Complete(context.Background(), types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
	require.NoError(t, err)

	assert.Equal(t, feedback.SourceFallback, outcome.Feedback.Source)
	assert.True(t, outcome.Feedback.IsMissingCredential())
	assert.True(t, strings.HasSuffix(outcome.Session.AIFeedback, feedback.TagMissingKey))
}

func TestComplete_FeedbackFromChatProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Lead with the time savings."}}]}`))
	}))
	defer server.Close()

	config := llm.DefaultConfig().WithModel(llm.ProviderGroq, "", server.URL)
	config.Providers[0].APIKey = "test-key"

	f := newFixture(t)
	e := f.newEngine(t, feedback.NewCoordinator(config, feedback.WithTimeout(2*time.Second)))

	outcome, err := e.Complete(context.Background(), types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
	require.NoError(t, err)

	assert.Equal(t, feedback.SourceAI, outcome.Feedback.Source)
	assert.Equal(t, "Lead with the time savings.", outcome.Session.AIFeedback)
}

func TestComplete_FollowUpConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	obj, err := f.engine.AddObjection(ctx, types.Objection{
		Title:         "Insurance",
		ObjectionText: "Will this slow down claims?",
		Difficulty:    types.DifficultyMedium,
		FollowUps:     []string{"Which payers?", "What about denials?"},
	})
	require.NoError(t, err)
	require.NoError(t, f.engine.SelectObjection(ctx, obj.ID))

	rec := types.Recording{Transcript: scenarioTranscript, DurationSeconds: 20}

	first, err := f.engine.Complete(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, f.engine.Conversation().Step)
	assert.Equal(t, "Which payers?", first.NextPrompt)
	assert.Equal(t, "Insurance", first.Session.Objection.Title)

	second, err := f.engine.Complete(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 2, f.engine.Conversation().Step)
	assert.Equal(t, "What about denials?", second.NextPrompt)

	third, err := f.engine.Complete(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 0, f.engine.Conversation().Step)
	assert.Empty(t, f.engine.Conversation().History)
	assert.Empty(t, third.NextPrompt)

	require.Len(t, f.feedback.requests, 3)
	assert.Equal(t, "Will this slow down claims?", f.feedback.requests[0].ObjectionText)
	assert.Equal(t, "Which payers?", f.feedback.requests[1].ObjectionText)
	assert.Equal(t, 1, f.feedback.requests[1].FollowUpStep)
	assert.Equal(t, "Will this slow down claims?", f.feedback.requests[1].PreviousPrompt)
	assert.Equal(t, "What about denials?", f.feedback.requests[2].ObjectionText)

	// A fresh engine resumes the same objection
	reloaded := f.newEngine(t, f.feedback)
	require.NotNil(t, reloaded.Selected())
	assert.Equal(t, obj.ID, reloaded.Selected().ID)
}

func TestSelectObjection_ResetsConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.SelectObjection(ctx, 1))
	_, err := f.engine.Complete(ctx, types.Recording{Transcript: scenarioTranscript, DurationSeconds: 20})
	require.NoError(t, err)
	require.Equal(t, 1, f.engine.Conversation().Step)

	require.NoError(t, f.engine.SelectObjection(ctx, 1))
	assert.Equal(t, 0, f.engine.Conversation().Step)
	assert.Empty(t, f.engine.Conversation().History)

	err = f.engine.SelectObjection(ctx, 999)
	assert.True(t, errors.Is(err, objections.ErrNotFound))

	require.NoError(t, f.engine.SelectObjection(ctx, 0))
	assert.Nil(t, f.engine.Selected())
}

func TestComplete_BadgeAchievement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.SaveStats(ctx, types.UserStats{TotalPractices: 9, Badges: []string{}}))
	e := f.newEngine(t, f.feedback)

	outcome, err := e.Complete(ctx, types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
	require.NoError(t, err)

	require.NotNil(t, outcome.Achievement)
	assert.Equal(t, gamification.BadgeDedicatedLearner, outcome.Achievement.Badge)
}

func TestLoad_MalformedRecordsUseDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, records.KeyHistory, []byte(`{"broken":`)))
	require.NoError(t, f.store.Save(ctx, records.KeyStats, []byte(`[]`)))
	require.NoError(t, f.store.Save(ctx, records.KeyConversation, []byte(`{"objection_id":4242,"step":1,"history":[]}`)))

	e := f.newEngine(t, f.feedback)

	assert.Empty(t, e.History())
	assert.Equal(t, records.DefaultStats(), e.Stats())
	assert.Nil(t, e.Selected())
	assert.Equal(t, 0, e.Conversation().Step)
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.engine.Complete(ctx, types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
		require.NoError(t, err)
	}
	statsBefore := f.engine.Stats()

	require.NoError(t, f.engine.DeleteSession(ctx, "session-002"))

	history := f.engine.History()
	require.Len(t, history, 2)
	assert.Equal(t, "session-003", history[0].ID)
	assert.Equal(t, "session-001", history[1].ID)
	assert.Equal(t, statsBefore, f.engine.Stats())

	stored, err := f.repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	err = f.engine.DeleteSession(ctx, "session-002")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestDeleteObjection_ClearsSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	obj, err := f.engine.AddObjection(ctx, types.Objection{Title: "x", ObjectionText: "x?"})
	require.NoError(t, err)
	require.NoError(t, f.engine.SelectObjection(ctx, obj.ID))

	require.NoError(t, f.engine.DeleteObjection(ctx, obj.ID))
	assert.Nil(t, f.engine.Selected())

	err = f.engine.DeleteObjection(ctx, 1)
	assert.True(t, errors.Is(err, objections.ErrBuiltinImmutable))
}

func TestImportObjections_Persists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.engine.ImportObjections(ctx, strings.NewReader("objections:\n  - title: A\n    objection: A?\n    difficulty: Hard\n"))
	require.NoError(t, err)
	require.Len(t, added, 1)

	set, err := f.repo.LoadCustomObjections(ctx)
	require.NoError(t, err)
	require.Len(t, set.Objections, 1)
	assert.Equal(t, added[0].ID, set.Objections[0].ID)
}

func TestOnProgress_StepOrder(t *testing.T) {
	f := newFixture(t)
	var steps []string
	f.engine.onProgress = func(e ProgressEvent) { steps = append(steps, e.Step) }

	require.NoError(t, f.engine.SelectObjection(context.Background(), 1))
	_, err := f.engine.Complete(context.Background(), types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{
		StepScore, StepAnalyze, StepCoaching, StepFeedback, StepGamification, StepConversation, StepCommit,
	}, steps)
}

type brokenSaveStore struct{ store.Store }

func (b brokenSaveStore) Save(context.Context, string, []byte) error {
	return errors.New("read-only")
}

func TestComplete_PersistFailureStillReturnsSession(t *testing.T) {
	mem, err := store.NewStore(store.StoreTypeMemory)
	require.NoError(t, err)
	e, err := New(Options{Repository: records.New(brokenSaveStore{mem}, 0), Feedback: &stubFeedback{text: "ok"}})
	require.NoError(t, err)
	require.NoError(t, e.Load(context.Background()))

	outcome, err := e.Complete(context.Background(), types.Recording{Transcript: scenarioTranscript, DurationSeconds: 10})
	require.NoError(t, err)

	assert.Error(t, outcome.PersistErr)
	assert.Equal(t, "ok", outcome.Session.AIFeedback)
	assert.Len(t, e.History(), 1)
	assert.Equal(t, 1, e.Stats().TotalPractices)
}
