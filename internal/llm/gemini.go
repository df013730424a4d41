package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel implements ChatModel for Google Gemini
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiModel creates a new Gemini client
func NewGeminiModel(ctx context.Context, apiKey, model string, temperature float64) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Invoke implements ChatModel
func (g *GeminiModel) Invoke(ctx context.Context, messages []Message) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)

	system, rest := splitSystem(messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	parts := make([]genai.Part, 0, len(rest))
	for _, m := range rest {
		parts = append(parts, genai.Text(m.Content))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no prompt content to send")
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (g *GeminiModel) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
