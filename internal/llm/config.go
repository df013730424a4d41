// Package llm provides the multi-provider LLM client facade and the structured
// extraction protocol used at every LLM boundary.
package llm

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Provider identifies an LLM backend, or the automatic failover mode
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAuto tries every provider in order until one succeeds
	ProviderAuto Provider = "auto"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderMistral is the Mistral AI provider
	ProviderMistral Provider = "mistral"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// FailoverOrder is the order in which ProviderAuto tries providers
var FailoverOrder = []Provider{ProviderGemini, ProviderMistral, ProviderAnthropic}

// NormalizeProvider maps a free-form selector onto a Provider.
// Empty or unrecognized values select ProviderAuto.
func NormalizeProvider(s string) Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return ProviderAuto
}

// Valid reports whether p is a known selector
func (p Provider) Valid() bool {
	switch p {
	case ProviderAuto, ProviderGemini, ProviderMistral, ProviderAnthropic:
		return true
	}
	return false
}

// providerSpec describes where a provider finds its credential and model name
type providerSpec struct {
	keyNames     []string // first non-empty wins
	modelKey     string
	defaultModel string
}

var providerSpecs = map[Provider]providerSpec{
	ProviderGemini: {
		keyNames:     []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		modelKey:     "GEMINI_MODEL",
		defaultModel: "gemini-2.0-flash",
	},
	ProviderMistral: {
		keyNames:     []string{"MISTRAL_API_KEY"},
		modelKey:     "MISTRAL_MODEL",
		defaultModel: "mistral-large-latest",
	},
	ProviderAnthropic: {
		keyNames:     []string{"ANTHROPIC_API_KEY"},
		modelKey:     "ANTHROPIC_MODEL",
		defaultModel: "claude-sonnet-4-20250514",
	},
}

// CredentialSource resolves configuration values such as API keys and model names
type CredentialSource interface {
	Lookup(key string) (string, bool)
}

// EnvCredentials resolves credentials from the process environment
type EnvCredentials struct{}

// Lookup implements CredentialSource
func (EnvCredentials) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Options tunes client construction and invocation
type Options struct {
	Temperature    float64
	AttemptTimeout time.Duration // per provider attempt; negative disables
	Logger         *slog.Logger
}

// Default option values
const (
	DefaultTemperature    = 0.2
	DefaultAttemptTimeout = 60 * time.Second
)

// DefaultOptions returns the default client options
func DefaultOptions() Options {
	return Options{
		Temperature:    DefaultTemperature,
		AttemptTimeout: DefaultAttemptTimeout,
		Logger:         slog.Default(),
	}
}

// WithDefaults fills each zero field from DefaultOptions
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Temperature == 0 {
		o.Temperature = d.Temperature
	}
	if o.AttemptTimeout == 0 {
		o.AttemptTimeout = d.AttemptTimeout
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// resolveCredentials returns the API key and model name for a provider
func resolveCredentials(src CredentialSource, p Provider) (apiKey, model string, err error) {
	spec, ok := providerSpecs[p]
	if !ok {
		return "", "", &UnknownProviderError{Value: string(p)}
	}
	if src == nil {
		src = EnvCredentials{}
	}
	for _, name := range spec.keyNames {
		if v, found := src.Lookup(name); found && strings.TrimSpace(v) != "" {
			apiKey = strings.TrimSpace(v)
			break
		}
	}
	if apiKey == "" {
		return "", "", &CredentialError{Provider: string(p), Keys: spec.keyNames}
	}
	model = spec.defaultModel
	if v, found := src.Lookup(spec.modelKey); found && strings.TrimSpace(v) != "" {
		model = strings.TrimSpace(v)
	}
	return apiKey, model, nil
}

// CheckCredentials fails with a *CredentialError when an explicitly selected
// provider has no credential. ProviderAuto never fails here.
func CheckCredentials(src CredentialSource, p Provider) error {
	if p == ProviderAuto {
		return nil
	}
	_, _, err := resolveCredentials(src, p)
	return err
}
