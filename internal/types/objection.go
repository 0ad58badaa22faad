// Package types provides type definitions for the records shared across the pitch coach.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Difficulty is the self-declared difficulty of an objection
type Difficulty string

// Difficulty levels
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Objection is a scripted prompt the user rehearses a response to.
// Built-in objections are static; custom ones are user-created and persisted.
type Objection struct {
	ID            int        `json:"id" yaml:"id" validate:"gte=1"`
	Title         string     `json:"title" yaml:"title" validate:"required,max=120"`
	ObjectionText string     `json:"objection" yaml:"objection" validate:"required"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	FollowUps     []string   `json:"follow_ups,omitempty" yaml:"follow_ups,omitempty" validate:"dive,required"`
	IsCustom      bool       `json:"is_custom" yaml:"-"`
}

// Validate validates the Objection using the validator.
func (o *Objection) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

// Recording is what the recording collaborator hands over when a session stops.
// Any duration is accepted; the engine raises values below one second to one.
type Recording struct {
	Transcript      string `json:"transcript"`
	DurationSeconds int    `json:"duration_seconds"`
	AudioRef        string `json:"audio_ref,omitempty"`
}
