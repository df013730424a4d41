package llm

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

// MistralEndpoint is the Mistral chat completions endpoint
const MistralEndpoint = "https://api.mistral.ai/v1/chat/completions"

// MistralModel implements ChatModel for Mistral AI over its HTTP API
type MistralModel struct {
	apiKey      string
	model       string
	temperature float64
	endpoint    string
	httpClient  *http.Client
}

// NewMistralModel creates a new Mistral client
func NewMistralModel(apiKey, model string, temperature float64) *MistralModel {
	return &MistralModel{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		endpoint:    MistralEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// WithEndpoint returns the client pointed at a different endpoint
func (m *MistralModel) WithEndpoint(endpoint string) *MistralModel {
	m.endpoint = endpoint
	return m
}

type mistralRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
}

type mistralResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke implements ChatModel
func (m *MistralModel) Invoke(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(mistralRequest{
		Model:       m.model,
		Temperature: m.temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed mistralResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}
