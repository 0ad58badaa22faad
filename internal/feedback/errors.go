package feedback

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/api/googleapi"

	"github.com/jonathan/pitch-coach/internal/llm"
)

// ErrMissingCredential means no provider key is configured
var ErrMissingCredential = errors.New("feedback provider API key missing")

// ErrorKind distinguishes provider failures for the diagnostic tag
type ErrorKind string

// Provider failure kinds
const (
	// KindConnection covers non-success status from any provider, network failure and timeout
	KindConnection ErrorKind = "connection"
	// KindUnavailable covers empty or unparseable completions and anything unclassified
	KindUnavailable ErrorKind = "unavailable"
)

// ProviderError wraps any failure after a provider was selected
type ProviderError struct {
	Provider llm.Provider
	Kind     ErrorKind
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("feedback provider %s failed (%s): %v", e.Provider, e.Kind, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// classify maps a client error to a ProviderError kind
func classify(err error) ErrorKind {
	var statusErr *llm.StatusError
	var apiErr *googleapi.Error
	var netErr net.Error
	switch {
	case errors.As(err, &statusErr),
		errors.As(err, &apiErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &netErr):
		return KindConnection
	default:
		return KindUnavailable
	}
}
