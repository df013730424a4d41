// Package market fetches market demand for a target role: web search snippets
// from a Source, distilled into a skill list by the model or, failing that, a
// keyword scan.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Search limits
const (
	MaxResults          = 8
	SnippetContentLimit = 600
)

// Source provider names, recorded as MarketRequirements.Source
const (
	SourceTavily = "tavily"
	SourceGoogle = "google-cse"
)

// Source returns short text snippets describing the market for a role.
// A Source never returns an empty list without an error.
type Source interface {
	Name() string
	Search(ctx context.Context, role string) ([]string, error)
}

// NoResultsError is returned when a search produced zero usable snippets
type NoResultsError struct {
	Role   string
	Source string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no %s results for role %q; try a different role or check your API key limits", e.Source, e.Role)
}

// Query builds the search query for a role
func Query(role string, now time.Time) string {
	return fmt.Sprintf("%s required skills tech stack %d", strings.TrimSpace(role), now.Year())
}

// Snippet turns a search hit into the lowercase blob handed to synthesis:
// the title, a newline, and at most SnippetContentLimit characters of content.
func Snippet(title, content string) string {
	if r := []rune(content); len(r) > SnippetContentLimit {
		content = string(r[:SnippetContentLimit])
	}
	return strings.ToLower(strings.TrimSpace(title + "\n" + content))
}

// collect drops empty snippets and fails with *NoResultsError if none remain
func collect(role, source string, snippets []string) ([]string, error) {
	out := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, &NoResultsError{Role: role, Source: source}
	}
	return out, nil
}
