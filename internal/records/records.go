// Package records reads and writes the four persisted pitch coach documents.
//
// A document that is absent, not valid JSON, or fails its schema loads as the
// default value. Only store I/O failures are returned as errors.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/pitch-coach/internal/conversation"
	"github.com/jonathan/pitch-coach/internal/objections"
	"github.com/jonathan/pitch-coach/internal/schemas"
	"github.com/jonathan/pitch-coach/internal/store"
	"github.com/jonathan/pitch-coach/internal/types"
)

// Store keys
const (
	KeyHistory          = "history"
	KeyStats            = "stats"
	KeyCustomObjections = "custom_objections"
	KeyConversation     = "conversation"
)

// MaxHistory is the most sessions ever kept
const MaxHistory = 20

// Repository maps typed records onto a key/value store.
type Repository struct {
	store        store.Store
	historyLimit int
}

// New creates a Repository. A limit outside 1..MaxHistory means MaxHistory.
func New(s store.Store, historyLimit int) *Repository {
	if historyLimit <= 0 || historyLimit > MaxHistory {
		historyLimit = MaxHistory
	}
	return &Repository{store: s, historyLimit: historyLimit}
}

// HistoryLimit returns the effective history cap
func (r *Repository) HistoryLimit() int {
	return r.historyLimit
}

// load fetches a document and decodes it into v. It reports false when the
// document is absent or unusable, leaving v untouched.
func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}

	if err := schemas.ValidateRecord(key, data); err != nil {
		log.Printf("[STORE] Ignoring malformed %s record: %v", key, err)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("[STORE] Ignoring undecodable %s record: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadHistory returns sessions newest first, at most HistoryLimit of them
func (r *Repository) LoadHistory(ctx context.Context) ([]types.PitchSession, error) {
	var history []types.PitchSession
	ok, err := r.load(ctx, KeyHistory, &history)
	if err != nil || !ok {
		return []types.PitchSession{}, err
	}
	if len(history) > r.historyLimit {
		history = history[:r.historyLimit]
	}
	return history, nil
}

// SaveHistory persists at most HistoryLimit sessions. Audio references are
// process-local and are dropped.
func (r *Repository) SaveHistory(ctx context.Context, history []types.PitchSession) error {
	if len(history) > r.historyLimit {
		history = history[:r.historyLimit]
	}
	out := make([]types.PitchSession, len(history))
	for i, s := range history {
		s.AudioRef = ""
		out[i] = s
	}
	return r.save(ctx, KeyHistory, out)
}

// LoadStats returns the stored stats or zero stats
func (r *Repository) LoadStats(ctx context.Context) (types.UserStats, error) {
	var stats types.UserStats
	ok, err := r.load(ctx, KeyStats, &stats)
	if err != nil || !ok {
		return DefaultStats(), err
	}
	if stats.Badges == nil {
		stats.Badges = []string{}
	}
	return stats, nil
}

// SaveStats persists stats
func (r *Repository) SaveStats(ctx context.Context, stats types.UserStats) error {
	if stats.Badges == nil {
		stats.Badges = []string{}
	}
	return r.save(ctx, KeyStats, stats)
}

// LoadCustomObjections returns the stored custom objection set
func (r *Repository) LoadCustomObjections(ctx context.Context) (objections.CustomSet, error) {
	var set objections.CustomSet
	ok, err := r.load(ctx, KeyCustomObjections, &set)
	if err != nil || !ok {
		return objections.CustomSet{LastID: objections.CustomIDOffset}, err
	}
	return set, nil
}

// SaveCustomObjections persists the custom objection set
func (r *Repository) SaveCustomObjections(ctx context.Context, set objections.CustomSet) error {
	if set.Objections == nil {
		set.Objections = []types.Objection{}
	}
	return r.save(ctx, KeyCustomObjections, set)
}

// LoadConversation returns the stored conversation state or idle
func (r *Repository) LoadConversation(ctx context.Context) (types.ConversationState, error) {
	var state types.ConversationState
	ok, err := r.load(ctx, KeyConversation, &state)
	if err != nil || !ok {
		return conversation.Idle(), err
	}
	if state.History == nil {
		state.History = []types.ConversationTurn{}
	}
	return state, nil
}

// SaveConversation persists the conversation state
func (r *Repository) SaveConversation(ctx context.Context, state types.ConversationState) error {
	return r.save(ctx, KeyConversation, state)
}

// DefaultStats returns the stats of a user who never practiced
func DefaultStats() types.UserStats {
	return types.UserStats{Badges: []string{}}
}
