package coach

import "errors"

var (
	// ErrSessionNotFound is returned when deleting an unknown session id
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotLoaded is returned when the engine is used before Load
	ErrNotLoaded = errors.New("engine not loaded")
)
