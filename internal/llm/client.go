package llm

import (
	"context"
	"fmt"
)

// Message is one chat message
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Client is an abstraction over feedback providers
type Client interface {
	// Complete sends the messages and returns the first completion's text
	Complete(ctx context.Context, messages []Message) (string, error)
	// Provider identifies the backing provider
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// Options carries request parameters shared by every provider
type Options struct {
	MaxTokens   int
	Temperature float64
}

// NewClient creates a client for the given provider configuration
func NewClient(ctx context.Context, pc ProviderConfig, opts Options) (Client, error) {
	if !pc.Available() {
		return nil, fmt.Errorf("%s: %w", pc.Provider, ErrNoProvider)
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	if !pc.UsesChatCompletions() {
		return NewGeminiClient(ctx, pc, opts)
	}
	if pc.URL == "" {
		return nil, fmt.Errorf("%s: no chat-completions endpoint configured", pc.Provider)
	}
	return NewChatClient(pc, opts), nil
}
