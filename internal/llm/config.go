// Package llm provides the coaching-feedback provider configurations and chat clients.
// Providers form a small closed set tried in priority order by credential availability.
package llm

import (
	"errors"
	"os"
)

// Provider represents an LLM provider
type Provider string

// Provider constants, in default priority order
const (
	// ProviderGroq is Groq's OpenAI-compatible chat-completions API
	ProviderGroq Provider = "groq"
	// ProviderOpenAI is the OpenAI chat-completions API
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is Google Gemini via the generative-ai SDK
	ProviderGemini Provider = "gemini"
)

// Request defaults for coaching feedback
const (
	DefaultMaxTokens   = 200
	DefaultTemperature = 0.7
)

// ErrNoProvider is returned by Select when no provider has a credential
var ErrNoProvider = errors.New("no feedback provider credential configured")

// ProviderConfig is one provider: which model, where, and with which key.
type ProviderConfig struct {
	Provider Provider
	Model    string
	URL      string // chat-completions endpoint; unused for Gemini
	EnvKey   string // environment variable holding the credential
	APIKey   string
}

// Available reports whether the provider has a credential
func (p ProviderConfig) Available() bool {
	return p.APIKey != ""
}

// UsesChatCompletions reports whether the provider speaks the chat-completions wire format
func (p ProviderConfig) UsesChatCompletions() bool {
	return p.Provider != ProviderGemini
}

// Config holds the provider list and request parameters
type Config struct {
	Providers   []ProviderConfig
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns Groq, then OpenAI, then Gemini, with credentials unset
func DefaultConfig() *Config {
	return &Config{
		Providers: []ProviderConfig{
			{
				Provider: ProviderGroq,
				Model:    "llama-3.1-8b-instant",
				URL:      "https://api.groq.com/openai/v1/chat/completions",
				EnvKey:   "GROQ_API_KEY",
			},
			{
				Provider: ProviderOpenAI,
				Model:    "gpt-4o-mini",
				URL:      "https://api.openai.com/v1/chat/completions",
				EnvKey:   "OPENAI_API_KEY",
			},
			{
				Provider: ProviderGemini,
				Model:    "gemini-2.5-flash",
				EnvKey:   "GEMINI_API_KEY",
			},
		},
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// WithEnvKeys returns a copy of the config with each provider's APIKey read from its EnvKey.
// Keys already set are kept.
func (c *Config) WithEnvKeys() *Config {
	return c.withKeys(os.Getenv)
}

func (c *Config) withKeys(lookup func(string) string) *Config {
	out := c.clone()
	for i := range out.Providers {
		if out.Providers[i].APIKey == "" && out.Providers[i].EnvKey != "" {
			out.Providers[i].APIKey = lookup(out.Providers[i].EnvKey)
		}
	}
	return out
}

// WithModel returns a copy of the config with a different model (and, if non-empty, URL) for a provider
func (c *Config) WithModel(provider Provider, model, url string) *Config {
	out := c.clone()
	for i := range out.Providers {
		if out.Providers[i].Provider != provider {
			continue
		}
		if model != "" {
			out.Providers[i].Model = model
		}
		if url != "" {
			out.Providers[i].URL = url
		}
	}
	return out
}

// Select returns the first provider with a credential
func (c *Config) Select() (ProviderConfig, error) {
	for _, p := range c.Providers {
		if p.Available() {
			return p, nil
		}
	}
	return ProviderConfig{}, ErrNoProvider
}

func (c *Config) clone() *Config {
	out := &Config{
		Providers:   make([]ProviderConfig, len(c.Providers)),
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}
	copy(out.Providers, c.Providers)
	return out
}
