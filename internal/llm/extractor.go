// Package llm - extractor.go implements the structured extraction protocol:
// parse JSON, validate against a schema, salvage once, then fall back.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/schemas"
)

// Path records which branch of the extraction protocol produced a result
type Path string

// Extraction paths
const (
	// PathParsed means the primary span parsed and validated
	PathParsed Path = "parsed"
	// PathSalvaged means the salvage re-extraction parsed and validated
	PathSalvaged Path = "salvaged"
	// PathFallback means the deterministic fallback produced the value
	PathFallback Path = "fallback"
)

// Task describes one LLM-backed sub-task
type Task[T any] struct {
	Name string
	// Messages is the complete prompt
	Messages []Message
	// Schema is the embedded schema name the JSON must satisfy; empty skips schema validation
	Schema string
	// Validate performs checks the schema cannot express; optional
	Validate func(*T) error
	// Normalize is applied to successfully parsed values; optional
	Normalize func(*T)
	// Fallback produces a value without any network access. It must not fail.
	Fallback func() T
	// PromptErr is set when the prompt could not be built; Extract then
	// falls back without calling the model
	PromptErr error
}

// WithPrompt sets the task messages from a system and user prompt, or
// records err as PromptErr.
func (t Task[T]) WithPrompt(system, user string, err error) Task[T] {
	if err != nil {
		t.Messages = nil
		t.PromptErr = err
		return t
	}
	t.Messages = []Message{SystemMessage(system), UserMessage(user)}
	return t
}

// Result is the tagged outcome of Extract
type Result[T any] struct {
	Value T
	Path  Path
	// Err is the cause that forced the fallback; nil on the parsed and salvaged paths
	Err error
}

// UsedFallback reports whether the deterministic fallback produced the value
func (r Result[T]) UsedFallback() bool {
	return r.Path == PathFallback
}

// ErrNoJSONObject is returned when a response contains no JSON object span
var ErrNoJSONObject = errors.New("no JSON object found in response")

// Extract runs the extraction protocol for task against client. It never
// returns an error: every failure ends on the fallback path.
func Extract[T any](ctx context.Context, client ChatModel, task Task[T]) Result[T] {
	if task.PromptErr != nil {
		return fallback(task, fmt.Errorf("%s: prompt unavailable: %w", task.Name, task.PromptErr))
	}
	if client == nil {
		return fallback(task, fmt.Errorf("%s: no LLM client", task.Name))
	}

	raw, err := client.Invoke(ctx, task.Messages)
	if err != nil {
		return fallback(task, fmt.Errorf("%s: invoke failed: %w", task.Name, err))
	}

	value, err := decode(task, FirstObjectSpan(raw))
	if err == nil {
		return success(task, value, PathParsed)
	}

	// Salvage: re-extract from the same raw text with a balanced-brace scan,
	// which recovers when trailing prose carries a stray '}'.
	value, salvageErr := decode(task, ExtractJSONObject(StripCodeFences(raw)))
	if salvageErr == nil {
		return success(task, value, PathSalvaged)
	}

	return fallback(task, fmt.Errorf("%s: %w", task.Name, errors.Join(err, salvageErr)))
}

func decode[T any](task Task[T], span string) (T, error) {
	var value T
	if strings.TrimSpace(span) == "" {
		return value, ErrNoJSONObject
	}

	if task.Schema != "" {
		if err := schemas.Validate(task.Schema, span); err != nil {
			return value, err
		}
	}

	if err := json.Unmarshal([]byte(span), &value); err != nil {
		return value, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	if task.Validate != nil {
		if err := task.Validate(&value); err != nil {
			return value, err
		}
	}
	return value, nil
}

func success[T any](task Task[T], value T, path Path) Result[T] {
	if task.Normalize != nil {
		task.Normalize(&value)
	}
	return Result[T]{Value: value, Path: path}
}

func fallback[T any](task Task[T], cause error) Result[T] {
	var value T
	if task.Fallback != nil {
		value = task.Fallback()
	}
	return Result[T]{Value: value, Path: PathFallback, Err: cause}
}
