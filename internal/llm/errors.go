package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when the provider answered without any text
var ErrEmptyCompletion = errors.New("no feedback generated")

// StatusError is a non-success HTTP response from a provider
type StatusError struct {
	Provider Provider
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %s returned status %d", e.Provider, e.Status)
}

// ResponseError is a response body that could not be decoded
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed completion: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed completion: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
