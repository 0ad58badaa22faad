package store

import "errors"

// Common errors for store operations.
var (
	ErrInvalidConfig    = errors.New("invalid store configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrInvalidKey       = errors.New("invalid store key")
	ErrClosed           = errors.New("store is closed")
)
