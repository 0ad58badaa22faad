// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/pitch-coach/internal/llm"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultStore                  = "file"
	DefaultDataDir                = ".pitch_coach"
	DefaultRedisAddr              = "localhost:6379"
	DefaultFeedbackTimeoutSeconds = 15
	DefaultHistoryLimit           = 20
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
// Provider API keys are never read from this file, only from the environment.
type Config struct {
	// Persistence
	Store       string `json:"store,omitempty" validate:"omitempty,oneof=memory file redis postgres"` // Store driver
	DataDir     string `json:"data_dir,omitempty"`                                                   // Directory for the file store
	DatabaseURL string `json:"database_url,omitempty"`                                               // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty" validate:"omitempty,hostname_port"`              // Redis host:port
	RedisDB     int    `json:"redis_db,omitempty" validate:"gte=0,lte=15"`                           // Redis logical database

	// Limits
	FeedbackTimeoutSeconds int `json:"feedback_timeout_seconds,omitempty" validate:"gte=0,lte=120"` // Per-call provider timeout
	HistoryLimit           int `json:"history_limit,omitempty" validate:"gte=0,lte=20"`             // Sessions kept in history

	// Provider overrides
	PrimaryModel   string `json:"primary_model,omitempty"`                         // Groq model
	PrimaryURL     string `json:"primary_url,omitempty" validate:"omitempty,url"`   // Groq chat-completions endpoint
	SecondaryModel string `json:"secondary_model,omitempty"`                       // OpenAI model
	SecondaryURL   string `json:"secondary_url,omitempty" validate:"omitempty,url"` // OpenAI chat-completions endpoint
	GeminiModel    string `json:"gemini_model,omitempty"`                          // Gemini model

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print step-by-step progress
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Driver-specific requirements
	if c.Store == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres store")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	result.Store = firstNonEmpty(result.Store, defaults.Store, DefaultStore)
	result.DataDir = firstNonEmpty(result.DataDir, defaults.DataDir, DefaultDataDir)
	result.DatabaseURL = firstNonEmpty(result.DatabaseURL, defaults.DatabaseURL)
	result.RedisAddr = firstNonEmpty(result.RedisAddr, defaults.RedisAddr, DefaultRedisAddr)
	result.PrimaryModel = firstNonEmpty(result.PrimaryModel, defaults.PrimaryModel)
	result.PrimaryURL = firstNonEmpty(result.PrimaryURL, defaults.PrimaryURL)
	result.SecondaryModel = firstNonEmpty(result.SecondaryModel, defaults.SecondaryModel)
	result.SecondaryURL = firstNonEmpty(result.SecondaryURL, defaults.SecondaryURL)
	result.GeminiModel = firstNonEmpty(result.GeminiModel, defaults.GeminiModel)

	// Int fields: use default if zero
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.FeedbackTimeoutSeconds == 0 {
		result.FeedbackTimeoutSeconds = defaults.FeedbackTimeoutSeconds
	}
	if result.FeedbackTimeoutSeconds == 0 {
		result.FeedbackTimeoutSeconds = DefaultFeedbackTimeoutSeconds
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = DefaultHistoryLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FeedbackTimeout returns the provider timeout as a duration
func (c *Config) FeedbackTimeout() time.Duration {
	if c.FeedbackTimeoutSeconds <= 0 {
		return DefaultFeedbackTimeoutSeconds * time.Second
	}
	return time.Duration(c.FeedbackTimeoutSeconds) * time.Second
}

// LLMConfig builds the provider list with model overrides applied and keys
// read through lookup (os.Getenv in production).
func (c *Config) LLMConfig(lookup func(string) string) *llm.Config {
	cfg := llm.DefaultConfig().
		WithModel(llm.ProviderGroq, c.PrimaryModel, c.PrimaryURL).
		WithModel(llm.ProviderOpenAI, c.SecondaryModel, c.SecondaryURL).
		WithModel(llm.ProviderGemini, c.GeminiModel, "")
	for i := range cfg.Providers {
		cfg.Providers[i].APIKey = lookup(cfg.Providers[i].EnvKey)
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
