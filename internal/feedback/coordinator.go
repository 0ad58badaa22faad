// Package feedback acquires natural-language coaching feedback from an LLM provider,
// falling back to deterministic local feedback on any failure.
package feedback

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/prompts"
	"github.com/jonathan/pitch-coach/internal/types"
)

// DefaultTimeout bounds a single provider call
const DefaultTimeout = 15 * time.Second

// Source says where feedback text came from
type Source string

// Feedback sources
const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Request is the input for one feedback call
type Request struct {
	Transcript    string
	ObjectionText string
	Score         types.Score
	// FollowUpStep is > 0 when answering a scripted follow-up
	FollowUpStep int
	// PreviousPrompt is the prompt answered on the previous step
	PreviousPrompt string
}

// Result is the feedback plus how it was obtained. Text is never empty.
type Result struct {
	Text     string
	Source   Source
	Provider llm.Provider
	Tag      string
	Err      error
}

// ClientFactory builds a provider client; swapped out in tests
type ClientFactory func(ctx context.Context, pc llm.ProviderConfig, opts llm.Options) (llm.Client, error)

// Option configures a Coordinator
type Option func(*Coordinator)

// WithTimeout sets the per-call timeout; non-positive values keep the default
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClientFactory replaces how provider clients are built
func WithClientFactory(f ClientFactory) Option {
	return func(c *Coordinator) {
		c.newClient = f
	}
}

// Coordinator makes at most one provider attempt per call and never fails its caller.
type Coordinator struct {
	config    *llm.Config
	timeout   time.Duration
	newClient ClientFactory
}

// NewCoordinator creates a Coordinator over the given provider config
func NewCoordinator(config *llm.Config, opts ...Option) *Coordinator {
	if config == nil {
		config = llm.DefaultConfig()
	}
	c := &Coordinator{
		config:    config,
		timeout:   DefaultTimeout,
		newClient: llm.NewClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetFeedback returns coaching feedback for a pitch, or tagged fallback text.
func (c *Coordinator) GetFeedback(ctx context.Context, transcript, objectionText string, score types.Score) string {
	return c.Request(ctx, Request{Transcript: transcript, ObjectionText: objectionText, Score: score}).Text
}

// Request runs the full protocol and reports how the feedback was obtained.
func (c *Coordinator) Request(ctx context.Context, req Request) Result {
	pc, err := c.config.Select()
	if err != nil {
		log.Printf("[FEEDBACK] No provider key configured, using fallback")
		return fallbackResult(req, "", ErrMissingCredential)
	}

	text, err := c.complete(ctx, pc, req)
	if err != nil {
		providerErr := &ProviderError{Provider: pc.Provider, Kind: classify(err), Cause: err}
		log.Printf("[FEEDBACK] %v, using fallback", providerErr)
		return fallbackResult(req, pc.Provider, providerErr)
	}

	return Result{Text: text, Source: SourceAI, Provider: pc.Provider}
}

func (c *Coordinator) complete(ctx context.Context, pc llm.ProviderConfig, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := c.newClient(ctx, pc, llm.Options{
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	text, err := client.Complete(ctx, BuildMessages(req))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}

// BuildMessages renders the fixed system instruction and the templated user prompt.
func BuildMessages(req Request) []llm.Message {
	user := prompts.Format(prompts.MustGet(prompts.CoachingFile, prompts.KeyFeedbackUser), map[string]string{
		"Objection":   req.ObjectionText,
		"Pitch":       req.Transcript,
		"Clarity":     strconv.Itoa(req.Score.Clarity),
		"Confidence":  strconv.Itoa(req.Score.Confidence),
		"Conciseness": strconv.Itoa(req.Score.Conciseness),
	})
	if req.FollowUpStep > 0 && req.PreviousPrompt != "" {
		user += "\n\n" + prompts.Format(prompts.MustGet(prompts.CoachingFile, prompts.KeyFeedbackFollowUp), map[string]string{
			"Step":     strconv.Itoa(req.FollowUpStep),
			"Previous": req.PreviousPrompt,
		})
	}

	return []llm.Message{
		{Role: "system", Content: prompts.MustGet(prompts.CoachingFile, prompts.KeyFeedbackSystem)},
		{Role: "user", Content: user},
	}
}

func fallbackResult(req Request, provider llm.Provider, err error) Result {
	tag := tagFor(err)
	return Result{
		Text:     Fallback(req.Transcript, req.Score) + " " + tag,
		Source:   SourceFallback,
		Provider: provider,
		Tag:      tag,
		Err:      err,
	}
}

// IsMissingCredential reports whether a Result fell back for lack of a key
func (r Result) IsMissingCredential() bool {
	return errors.Is(r.Err, ErrMissingCredential)
}
