package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TavilyEndpoint is the Tavily search endpoint
const TavilyEndpoint = "https://api.tavily.com/search"

// TavilySource searches the web through the Tavily API
type TavilySource struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewTavilySource creates a Tavily source
func NewTavilySource(apiKey string) *TavilySource {
	return &TavilySource{
		apiKey:   apiKey,
		endpoint: TavilyEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// WithEndpoint returns the source pointed at a different endpoint
func (s *TavilySource) WithEndpoint(endpoint string) *TavilySource {
	s.endpoint = endpoint
	return s
}

// Name implements Source
func (s *TavilySource) Name() string { return SourceTavily }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search implements Source
func (s *TavilySource) Search(ctx context.Context, role string) ([]string, error) {
	reqBody, err := json.Marshal(tavilyRequest{
		APIKey:     s.apiKey,
		Query:      Query(role, s.now()),
		MaxResults: MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse tavily response: %w", err)
	}

	snippets := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		snippets = append(snippets, Snippet(r.Title, r.Content))
	}
	return collect(role, s.Name(), snippets)
}
