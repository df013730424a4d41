package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicModel implements ChatModel for Anthropic Claude
type AnthropicModel struct {
	client      anthropic.Client
	model       string
	temperature float64
}

// NewAnthropicModel creates a new Claude client
func NewAnthropicModel(apiKey, model string, temperature float64, opts ...anthropicoption.RequestOption) *AnthropicModel {
	opts = append([]anthropicoption.RequestOption{anthropicoption.WithAPIKey(apiKey)}, opts...)
	return &AnthropicModel{
		client:      anthropic.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

// Invoke implements ChatModel
func (a *AnthropicModel) Invoke(ctx context.Context, messages []Message) (string, error) {
	system, rest := splitSystem(messages)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(a.temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range rest {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
			continue
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
	}
	if len(params.Messages) == 0 {
		return "", fmt.Errorf("no prompt content to send")
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in Claude response")
	}
	return sb.String(), nil
}
