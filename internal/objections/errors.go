package objections

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no objection has the requested id
var ErrNotFound = errors.New("objection not found")

// ErrBuiltinImmutable is returned when deleting a built-in objection
var ErrBuiltinImmutable = errors.New("built-in objections cannot be modified")

// ImportError represents an error while importing an objection pack
type ImportError struct {
	Message string
	Index   int
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Index >= 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s (objection %d): %v", e.Message, e.Index+1, e.Cause)
		}
		return fmt.Sprintf("%s (objection %d)", e.Message, e.Index+1)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
