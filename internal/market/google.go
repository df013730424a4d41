package market

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleSource searches through a Google Programmable Search Engine
type GoogleSource struct {
	svc *customsearch.Service
	cx  string
	now func() time.Time
}

// NewGoogleSource creates a Custom Search source for the engine cx
func NewGoogleSource(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleSource, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSource{svc: svc, cx: cx, now: time.Now}, nil
}

// Name implements Source
func (s *GoogleSource) Name() string { return SourceGoogle }

// Search implements Source
func (s *GoogleSource) Search(ctx context.Context, role string) ([]string, error) {
	resp, err := s.svc.Cse.List().Cx(s.cx).Q(Query(role, s.now())).Num(MaxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	snippets := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		snippets = append(snippets, Snippet(item.Title, item.Snippet))
	}
	return collect(role, s.Name(), snippets)
}
