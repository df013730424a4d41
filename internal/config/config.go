// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Document string `json:"document,omitempty"` // Path to the CV (.txt, .md, .pdf, .html)
	Role     string `json:"role,omitempty"`     // Target role
	Language string `json:"language,omitempty" validate:"omitempty,oneof=english indonesia"`
	Out      string `json:"out,omitempty"` // Report output path

	// Providers
	Provider       string `json:"provider,omitempty" validate:"omitempty,oneof=auto gemini mistral anthropic"`
	SearchProvider string `json:"search_provider,omitempty" validate:"omitempty,oneof=auto tavily google"`
	SecretsFile    string `json:"secrets_file,omitempty"` // Optional YAML secret store

	// Behavior
	AttemptTimeout int     `json:"attempt_timeout,omitempty" validate:"gte=0,lte=600"` // Seconds per provider attempt
	Temperature    float64 `json:"temperature,omitempty" validate:"gte=0,lte=2"`
	Verbose        bool    `json:"verbose,omitempty"`
	DatabaseURL    string  `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// Default values applied by MergeWithDefaults
const (
	DefaultOut            = "report.md"
	DefaultAttemptTimeout = 60
)

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Language:       string(types.LanguageEnglish),
		Out:            DefaultOut,
		Provider:       string(llm.ProviderAuto),
		SearchProvider: "auto",
		AttemptTimeout: DefaultAttemptTimeout,
		Temperature:    llm.DefaultTemperature,
	}
}

var validate = validator.New()

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
// Required fields are not checked here; that happens after flags are merged.
func (c *Config) Validate() error {
	normalized := *c
	normalized.Language = strings.ToLower(strings.TrimSpace(c.Language))
	normalized.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	normalized.SearchProvider = strings.ToLower(strings.TrimSpace(c.SearchProvider))

	if err := validate.Struct(normalized); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Field() == "Provider" {
				return fmt.Errorf("config error: %w", &llm.UnknownProviderError{Value: c.Provider})
			}
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", jsonName(fe.Field()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Document != "" {
		if _, err := os.Stat(c.Document); os.IsNotExist(err) {
			return fmt.Errorf("config error: document not found: %s", c.Document)
		}
	}
	if c.SecretsFile != "" {
		if _, err := os.Stat(c.SecretsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: secrets file not found: %s", c.SecretsFile)
		}
	}

	return nil
}

func jsonName(field string) string {
	switch field {
	case "SearchProvider":
		return "search_provider"
	case "AttemptTimeout":
		return "attempt_timeout"
	}
	return strings.ToLower(field)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Document == "" {
		result.Document = defaults.Document
	}
	if result.Role == "" {
		result.Role = defaults.Role
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.SearchProvider == "" {
		result.SearchProvider = defaults.SearchProvider
	}
	if result.SecretsFile == "" {
		result.SecretsFile = defaults.SecretsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.AttemptTimeout == 0 {
		result.AttemptTimeout = defaults.AttemptTimeout
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMOptions converts the configuration into client options
func (c *Config) LLMOptions(logger *slog.Logger) llm.Options {
	opts := llm.DefaultOptions()
	if c.Temperature > 0 {
		opts.Temperature = c.Temperature
	}
	if c.AttemptTimeout > 0 {
		opts.AttemptTimeout = time.Duration(c.AttemptTimeout) * time.Second
	}
	if logger != nil {
		opts.Logger = logger
	}
	return opts
}
