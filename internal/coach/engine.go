// Package coach runs the pitch evaluation flow: score, analyze, coach, fetch
// feedback, then commit progress, conversation state and history in that order.
package coach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/pitch-coach/internal/analysis"
	"github.com/jonathan/pitch-coach/internal/coaching"
	"github.com/jonathan/pitch-coach/internal/conversation"
	"github.com/jonathan/pitch-coach/internal/feedback"
	"github.com/jonathan/pitch-coach/internal/gamification"
	"github.com/jonathan/pitch-coach/internal/objections"
	"github.com/jonathan/pitch-coach/internal/records"
	"github.com/jonathan/pitch-coach/internal/scoring"
	"github.com/jonathan/pitch-coach/internal/types"
)

// PlaceholderTranscript stands in for a recording that produced no text
const PlaceholderTranscript = "Speech recognition not available. Audio recording captured."

// FeedbackProvider returns feedback for a pitch. Implementations must always
// return usable text, falling back locally on failure.
type FeedbackProvider interface {
	Request(ctx context.Context, req feedback.Request) feedback.Result
}

// Options holds what an Engine needs
type Options struct {
	Repository *records.Repository
	Feedback   FeedbackProvider
	OnProgress ProgressCallback
	// Now defaults to time.Now
	Now func() time.Time
	// NewID defaults to time-ordered UUIDs
	NewID func() (string, error)
}

// Outcome is everything produced by one completed session
type Outcome struct {
	Session      types.PitchSession
	Stats        types.UserStats
	Achievement  *gamification.Achievement
	PointsEarned int
	// NextPrompt is the follow-up to answer next, empty when the conversation is idle
	NextPrompt string
	Feedback   feedback.Result
	// PersistErr collects store failures; the session is still returned
	PersistErr error
}

// Engine owns the in-memory copy of all persisted records for one user.
// It is not safe for concurrent use: one session is evaluated at a time.
type Engine struct {
	repo       *records.Repository
	feedback   FeedbackProvider
	tracker    *gamification.Tracker
	onProgress ProgressCallback
	now        func() time.Time
	newID      func() (string, error)

	loaded   bool
	history  []types.PitchSession
	stats    types.UserStats
	catalog  *objections.Catalog
	conv     types.ConversationState
	selected *types.Objection
}

// New creates an Engine. Call Load before use.
func New(opts Options) (*Engine, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("coach engine requires a repository")
	}
	if opts.Feedback == nil {
		return nil, fmt.Errorf("coach engine requires a feedback provider")
	}
	e := &Engine{
		repo:       opts.Repository,
		feedback:   opts.Feedback,
		tracker:    gamification.NewTracker(opts.Repository),
		onProgress: opts.OnProgress,
		now:        opts.Now,
		newID:      opts.NewID,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = newSessionID
	}
	return e, nil
}

func newSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return id.String(), nil
}

// Load reads every persisted record in parallel. Records that cannot be read
// are replaced by their defaults; the first store error is still returned so
// callers can warn, but the engine is usable either way.
func (e *Engine) Load(ctx context.Context) error {
	var (
		g       errgroup.Group
		history []types.PitchSession
		stats   types.UserStats
		custom  objections.CustomSet
		conv    types.ConversationState
	)

	g.Go(func() error {
		var err error
		history, err = e.repo.LoadHistory(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = e.repo.LoadStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		custom, err = e.repo.LoadCustomObjections(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		conv, err = e.repo.LoadConversation(ctx)
		return err
	})
	err := g.Wait()
	if err != nil {
		log.Printf("[COACH] Using defaults for unreadable records: %v", err)
	}

	e.history = history
	e.stats = stats
	e.catalog = objections.NewCatalog(custom)
	e.conv = conv
	e.selected = nil
	if conv.ObjectionID != 0 {
		if o, findErr := e.catalog.Find(conv.ObjectionID); findErr == nil {
			e.selected = &o
		} else {
			log.Printf("[COACH] Conversation refers to unknown objection %d, resetting", conv.ObjectionID)
			e.conv = conversation.Idle()
		}
	}
	e.loaded = true

	e.emitProgress(StepLoad, "", fmt.Sprintf("Loaded %d sessions and %d objections", len(e.history), len(e.catalog.All())), nil)
	return err
}

func (e *Engine) ensureLoaded() error {
	if !e.loaded {
		return ErrNotLoaded
	}
	return nil
}

// Catalog returns the objection catalog
func (e *Engine) Catalog() *objections.Catalog {
	return e.catalog
}

// Selected returns the objection being practiced, nil for general practice
func (e *Engine) Selected() *types.Objection {
	if e.selected == nil {
		return nil
	}
	o := *e.selected
	return &o
}

// Conversation returns the current conversation state
func (e *Engine) Conversation() types.ConversationState {
	return e.conv
}

// SelectObjection chooses a new base objection and resets the conversation.
// An id of 0 returns to general practice.
func (e *Engine) SelectObjection(ctx context.Context, id int) error {
	if err := e.ensureLoaded(); err != nil {
		return err
	}

	if id == 0 {
		e.selected = nil
	} else {
		o, err := e.catalog.Find(id)
		if err != nil {
			return err
		}
		e.selected = &o
	}

	e.conv = conversation.Select(id)
	return e.repo.SaveConversation(ctx, e.conv)
}

// Complete evaluates one finished recording and commits it. A session is
// returned even if feedback or persistence fail.
func (e *Engine) Complete(ctx context.Context, rec types.Recording) (*Outcome, error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}

	transcript := strings.TrimSpace(rec.Transcript)
	if transcript == "" {
		transcript = PlaceholderTranscript
	}
	duration := max(rec.DurationSeconds, 1)

	id, err := e.newID()
	if err != nil {
		return nil, err
	}
	now := e.now()

	ref := objections.Ref(e.selected)
	prompt := ref.Text
	if e.selected != nil {
		prompt = conversation.CurrentPrompt(e.conv, *e.selected)
	}

	score := scoring.Score(transcript, duration)
	e.emitProgress(StepScore, id, fmt.Sprintf("Overall score %d", score.Overall), score)

	ta := analysis.Analyze(transcript, duration)
	e.emitProgress(StepAnalyze, id, fmt.Sprintf("%d words at %d wpm (%s)", ta.WordCount, ta.WPM, ta.Pacing), ta)

	in := coaching.Input{Analysis: ta, Score: score, ObjectionTitle: ref.Title}
	weaknesses := coaching.IdentifyWeaknesses(in)
	tips := coaching.GenerateTips(in)
	e.emitProgress(StepCoaching, id, fmt.Sprintf("%d weaknesses, %d tips", len(weaknesses), len(tips)), weaknesses)

	req := feedback.Request{
		Transcript:    transcript,
		ObjectionText: prompt,
		Score:         score,
		FollowUpStep:  e.conv.Step,
	}
	if n := len(e.conv.History); n > 0 {
		req.PreviousPrompt = e.conv.History[n-1].ObjectionText
	}
	fb := e.feedback.Request(ctx, req)
	e.emitProgress(StepFeedback, id, fmt.Sprintf("Feedback from %s", fb.Source), fb.Text)

	var persistErrs []error

	stats, achievement, err := e.tracker.Record(ctx, e.stats, score, now)
	if err != nil {
		log.Printf("[COACH] %v", err)
		persistErrs = append(persistErrs, err)
	}
	e.stats = stats
	e.emitProgress(StepGamification, id, fmt.Sprintf("%d points, streak %d", stats.Points, stats.Streak), achievement)

	nextPrompt := ""
	if e.selected != nil {
		e.conv = conversation.Advance(e.conv, *e.selected, transcript, fb.Text)
		if err := e.repo.SaveConversation(ctx, e.conv); err != nil {
			log.Printf("[COACH] Failed to persist conversation: %v", err)
			persistErrs = append(persistErrs, err)
		}
		nextPrompt = e.conv.ContextualHelp
		e.emitProgress(StepConversation, id, fmt.Sprintf("Conversation step %d", e.conv.Step), nextPrompt)
	}

	session := types.PitchSession{
		ID:                 id,
		Timestamp:          now,
		Transcript:         transcript,
		DurationSeconds:    duration,
		Objection:          ref,
		Score:              score,
		TranscriptAnalysis: ta,
		Weaknesses:         weaknesses,
		ImprovementTips:    tips,
		AIFeedback:         fb.Text,
		AudioRef:           rec.AudioRef,
	}

	history := make([]types.PitchSession, 0, len(e.history)+1)
	history = append(history, session)
	history = append(history, e.history...)
	if len(history) > e.repo.HistoryLimit() {
		history = history[:e.repo.HistoryLimit()]
	}
	e.history = history
	if err := e.repo.SaveHistory(ctx, e.history); err != nil {
		log.Printf("[COACH] Failed to persist history: %v", err)
		persistErrs = append(persistErrs, err)
	}
	e.emitProgress(StepCommit, id, fmt.Sprintf("Saved session (%d in history)", len(e.history)), nil)

	return &Outcome{
		Session:      session,
		Stats:        stats,
		Achievement:  achievement,
		PointsEarned: gamification.PointsFor(score),
		NextPrompt:   nextPrompt,
		Feedback:     fb,
		PersistErr:   errors.Join(persistErrs...),
	}, nil
}

// History returns sessions newest first
func (e *Engine) History() []types.PitchSession {
	out := make([]types.PitchSession, len(e.history))
	copy(out, e.history)
	return out
}

// Stats returns the current progress stats
func (e *Engine) Stats() types.UserStats {
	return e.stats
}

// DeleteSession removes one session from history. Stats are not rewound.
func (e *Engine) DeleteSession(ctx context.Context, id string) error {
	if err := e.ensureLoaded(); err != nil {
		return err
	}
	for i, s := range e.history {
		if s.ID != id {
			continue
		}
		history := make([]types.PitchSession, 0, len(e.history)-1)
		history = append(history, e.history[:i]...)
		history = append(history, e.history[i+1:]...)
		if err := e.repo.SaveHistory(ctx, history); err != nil {
			return err
		}
		e.history = history
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// AddObjection creates a custom objection and persists the catalog
func (e *Engine) AddObjection(ctx context.Context, o types.Objection) (types.Objection, error) {
	if err := e.ensureLoaded(); err != nil {
		return types.Objection{}, err
	}
	created, err := e.catalog.Add(o)
	if err != nil {
		return types.Objection{}, err
	}
	return created, e.repo.SaveCustomObjections(ctx, e.catalog.Custom())
}

// ImportObjections adds a YAML pack of custom objections and persists the catalog
func (e *Engine) ImportObjections(ctx context.Context, pack io.Reader) ([]types.Objection, error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}
	added, err := e.catalog.Import(pack)
	if err != nil {
		return nil, err
	}
	return added, e.repo.SaveCustomObjections(ctx, e.catalog.Custom())
}

// DeleteObjection removes a custom objection. Practicing it resets the conversation.
func (e *Engine) DeleteObjection(ctx context.Context, id int) error {
	if err := e.ensureLoaded(); err != nil {
		return err
	}
	if err := e.catalog.Delete(id); err != nil {
		return err
	}
	if err := e.repo.SaveCustomObjections(ctx, e.catalog.Custom()); err != nil {
		return err
	}
	if e.selected != nil && e.selected.ID == id {
		return e.SelectObjection(ctx, 0)
	}
	return nil
}
