package market

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Combined queries several sources concurrently and merges their snippets in
// source order. It fails only when no source produced a snippet.
type Combined struct {
	sources []Source
}

// NewCombined creates a fan-out source
func NewCombined(sources ...Source) *Combined {
	return &Combined{sources: sources}
}

// Name implements Source
func (c *Combined) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

// Search implements Source
func (c *Combined) Search(ctx context.Context, role string) ([]string, error) {
	results := make([][]string, len(c.sources))
	errs := make([]error, len(c.sources))

	// Each goroutine writes only its own slot. Errors are collected, not
	// returned, so one failing source never cancels the others.
	var g errgroup.Group
	for i, src := range c.sources {
		g.Go(func() error {
			results[i], errs[i] = src.Search(ctx, role)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []string
	for _, r := range results {
		merged = append(merged, r...)
	}
	if len(merged) > 0 {
		return merged, nil
	}

	// Every source came back empty or failed: surface real failures first
	var failures []error
	for _, err := range errs {
		var noResults *NoResultsError
		if err != nil && !errors.As(err, &noResults) {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return nil, errors.Join(failures...)
	}
	return nil, &NoResultsError{Role: role, Source: c.Name()}
}
