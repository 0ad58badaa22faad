// Package objections holds the objection catalog: the static built-ins plus user-created custom objections.
package objections

import (
	"fmt"
	"strings"

	"github.com/jonathan/pitch-coach/internal/types"
)

// CustomIDOffset is added to the custom sequence so custom ids never collide with built-ins
const CustomIDOffset = 1000

// Defaults used when a session has no objection selected
const (
	GeneralPracticeTitle = "General Practice"
	GeneralPracticeText  = "General practice"
)

// CustomSet is the persisted form of the custom objections. LastID survives
// deletions so ids are never reused.
type CustomSet struct {
	LastID     int               `json:"last_id"`
	Objections []types.Objection `json:"objections"`
}

// Catalog is the combined objection list. Not safe for concurrent use.
type Catalog struct {
	custom CustomSet
}

// NewCatalog creates a catalog over a previously persisted custom set
func NewCatalog(custom CustomSet) *Catalog {
	c := &Catalog{custom: CustomSet{LastID: custom.LastID}}
	for _, o := range custom.Objections {
		o.IsCustom = true
		c.custom.Objections = append(c.custom.Objections, o)
		if o.ID > c.custom.LastID {
			c.custom.LastID = o.ID
		}
	}
	if c.custom.LastID < CustomIDOffset {
		c.custom.LastID = CustomIDOffset
	}
	return c
}

// All returns built-ins followed by custom objections in creation order
func (c *Catalog) All() []types.Objection {
	out := Builtins()
	return append(out, c.Custom().Objections...)
}

// Custom returns a copy of the custom set for persistence
func (c *Catalog) Custom() CustomSet {
	set := CustomSet{LastID: c.custom.LastID, Objections: make([]types.Objection, len(c.custom.Objections))}
	copy(set.Objections, c.custom.Objections)
	return set
}

// Find returns the objection with the given id
func (c *Catalog) Find(id int) (types.Objection, error) {
	for _, o := range c.All() {
		if o.ID == id {
			return o, nil
		}
	}
	return types.Objection{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// IsBuiltin reports whether id belongs to the static set
func IsBuiltin(id int) bool {
	for _, o := range builtins {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Add validates a new custom objection, assigns the next custom id and appends it.
func (c *Catalog) Add(o types.Objection) (types.Objection, error) {
	o.Title = strings.TrimSpace(o.Title)
	o.ObjectionText = strings.TrimSpace(o.ObjectionText)
	if o.Difficulty == "" {
		o.Difficulty = types.DifficultyMedium
	}
	o.ID = c.custom.LastID + 1
	o.IsCustom = true

	if err := o.Validate(); err != nil {
		return types.Objection{}, fmt.Errorf("invalid objection: %w", err)
	}

	c.custom.LastID = o.ID
	c.custom.Objections = append(c.custom.Objections, o)
	return o, nil
}

// Delete removes a custom objection. Built-ins cannot be deleted.
func (c *Catalog) Delete(id int) error {
	if IsBuiltin(id) {
		return fmt.Errorf("%w: id %d", ErrBuiltinImmutable, id)
	}
	for i, o := range c.custom.Objections {
		if o.ID == id {
			c.custom.Objections = append(c.custom.Objections[:i:i], c.custom.Objections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Ref converts an objection into the snapshot stored on a session. A nil
// objection yields the general practice defaults.
func Ref(o *types.Objection) types.ObjectionRef {
	if o == nil {
		return types.ObjectionRef{Title: GeneralPracticeTitle, Text: GeneralPracticeText}
	}
	return types.ObjectionRef{ID: o.ID, Title: o.Title, Text: o.ObjectionText}
}
