package llm

import (
	"fmt"
	"strings"
)

// CredentialError is returned when a provider's required credential is absent.
// It is a configuration problem, not a transient provider failure.
type CredentialError struct {
	Provider string
	Keys     []string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credential is missing: set %s in the environment or secrets file",
		e.Provider, strings.Join(e.Keys, " or "))
}

// UnknownProviderError is returned for an unrecognized provider selector
type UnknownProviderError struct {
	Value string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown LLM provider %q (expected auto, gemini, mistral or anthropic)", e.Value)
}

// Phase is the point at which a provider attempt failed
type Phase string

// Provider attempt phases
const (
	PhaseBuild  Phase = "build"
	PhaseInvoke Phase = "invoke"
)

// Failure is one recorded provider failure
type Failure struct {
	Index    int
	Provider Provider
	Phase    Phase
	Err      error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s[%d] %s: %v", f.Phase, f.Index, f.Provider, f.Err)
}

// ProviderError is returned when no provider produced a response.
// Failures are listed in provider order and only cover providers that were
// attempted. Canceled is set when the context ended before every provider
// had been tried.
type ProviderError struct {
	Failures []Failure
	Canceled error
}

func (e *ProviderError) Error() string {
	parts := make([]string, 0, len(e.Failures)+1)
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	if e.Canceled != nil {
		parts = append(parts, fmt.Sprintf("stopped before remaining providers: %v", e.Canceled))
	}
	if len(parts) == 0 {
		return "all providers failed: no providers configured"
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *ProviderError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	if e.Canceled != nil {
		errs = append(errs, e.Canceled)
	}
	return errs
}

// ParseError represents an error parsing a model response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
