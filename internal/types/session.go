package types

import "time"

// Score holds the three heuristic sub-scores plus the basic delivery metrics.
type Score struct {
	Clarity     int `json:"clarity"`
	Confidence  int `json:"confidence"`
	Conciseness int `json:"conciseness"`
	Overall     int `json:"overall"`
	WordCount   int `json:"word_count"`
	WPM         int `json:"wpm"`
}

// Pacing classifies speaking speed
type Pacing string

// Pacing values
const (
	PacingSlow Pacing = "slow"
	PacingGood Pacing = "good"
	PacingFast Pacing = "fast"
)

// TranscriptAnalysis is the lexical and structural breakdown of a transcript.
type TranscriptAnalysis struct {
	WordCount         int     `json:"word_count"`
	WPM               int     `json:"wpm"`
	FillerWords       int     `json:"filler_words"`
	StrongWords       int     `json:"strong_words"`
	WeakWords         int     `json:"weak_words"`
	Questions         int     `json:"questions"`
	Sentences         int     `json:"sentences"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	Pacing            Pacing  `json:"pacing"`
}

// WeaknessType names the area a weakness was found in
type WeaknessType string

// Weakness types
const (
	WeaknessClarity     WeaknessType = "clarity"
	WeaknessConfidence  WeaknessType = "confidence"
	WeaknessConciseness WeaknessType = "conciseness"
	WeaknessFillerWords WeaknessType = "filler_words"
	WeaknessWordChoice  WeaknessType = "word_choice"
	WeaknessPacing      WeaknessType = "pacing"
)

// Severity of a weakness
type Severity string

// Severity levels
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Weakness is a single issue found in a session, with advice on fixing it.
type Weakness struct {
	Type        WeaknessType `json:"type"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	Suggestion  string       `json:"suggestion"`
}

// ObjectionRef identifies the objection a session answered.
type ObjectionRef struct {
	ID    int    `json:"id,omitempty"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PitchSession is one completed recording plus everything computed from it.
// Sessions are immutable once committed to history.
type PitchSession struct {
	ID                 string             `json:"id"`
	Timestamp          time.Time          `json:"timestamp"`
	Transcript         string             `json:"transcript"`
	DurationSeconds    int                `json:"duration_seconds"`
	Objection          ObjectionRef       `json:"objection"`
	Score              Score              `json:"score"`
	TranscriptAnalysis TranscriptAnalysis `json:"transcript_analysis"`
	Weaknesses         []Weakness         `json:"weaknesses"`
	ImprovementTips    []string           `json:"improvement_tips"`
	AIFeedback         string             `json:"ai_feedback"`
	AudioRef           string             `json:"audio_ref,omitempty"`
}

// UserStats is the cumulative progress record for the single local user.
type UserStats struct {
	Points           int        `json:"points"`
	Streak           int        `json:"streak"`
	LastPracticeDate *time.Time `json:"last_practice_date"`
	Badges           []string   `json:"badges"`
	TotalPractices   int        `json:"total_practices"`
	BestScore        int        `json:"best_score"`
}

// HasBadge reports whether the badge was already awarded
func (s *UserStats) HasBadge(name string) bool {
	for _, b := range s.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// ConversationTurn is one answered step of a follow-up conversation.
type ConversationTurn struct {
	Step          int    `json:"step"`
	ObjectionText string `json:"objection_text"`
	Response      string `json:"response"`
	Feedback      string `json:"feedback"`
}

// ConversationState tracks progress through an objection's follow-ups.
type ConversationState struct {
	ObjectionID int                `json:"objection_id,omitempty"`
	Step        int                `json:"step"`
	History     []ConversationTurn `json:"history"`
	// ContextualHelp is the next follow-up prompt to surface, empty when idle.
	ContextualHelp string `json:"contextual_help,omitempty"`
}
