package llm

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ChatModel is a live client for a single provider
type ChatModel interface {
	// Invoke sends the prompt messages and returns the response text
	Invoke(ctx context.Context, messages []Message) (string, error)
}

// Client is the facade every pipeline stage talks to
type Client interface {
	ChatModel
	// Close releases any resources held by live provider clients
	Close() error
}

// BuildFunc constructs a live provider client, or fails
type BuildFunc func(ctx context.Context) (ChatModel, error)

// Builder pairs a provider with its construct-or-fail operation
type Builder struct {
	Provider Provider
	Build    BuildFunc
}

// NewBuilder returns the builder for a concrete provider, resolving its
// credential from src at build time.
func NewBuilder(p Provider, src CredentialSource, opts Options) (Builder, error) {
	var build BuildFunc
	switch p {
	case ProviderGemini:
		build = func(ctx context.Context) (ChatModel, error) {
			apiKey, model, err := resolveCredentials(src, p)
			if err != nil {
				return nil, err
			}
			return NewGeminiModel(ctx, apiKey, model, opts.Temperature)
		}
	case ProviderMistral:
		build = func(_ context.Context) (ChatModel, error) {
			apiKey, model, err := resolveCredentials(src, p)
			if err != nil {
				return nil, err
			}
			return NewMistralModel(apiKey, model, opts.Temperature), nil
		}
	case ProviderAnthropic:
		build = func(_ context.Context) (ChatModel, error) {
			apiKey, model, err := resolveCredentials(src, p)
			if err != nil {
				return nil, err
			}
			return NewAnthropicModel(apiKey, model, opts.Temperature), nil
		}
	default:
		return Builder{}, &UnknownProviderError{Value: string(p)}
	}
	return Builder{Provider: p, Build: build}, nil
}

// DefaultBuilders returns builders for every provider in FailoverOrder
func DefaultBuilders(src CredentialSource, opts Options) []Builder {
	builders := make([]Builder, 0, len(FailoverOrder))
	for _, p := range FailoverOrder {
		b, err := NewBuilder(p, src, opts)
		if err != nil {
			continue
		}
		builders = append(builders, b)
	}
	return builders
}

// New creates the client for a provider selector.
//
// ProviderAuto returns a lazily-built MultiProvider and never fails. A concrete
// provider is built immediately; a missing credential yields a *CredentialError.
func New(ctx context.Context, p Provider, src CredentialSource, opts Options) (Client, error) {
	if p == "" {
		p = ProviderAuto
	}
	if p == ProviderAuto {
		return NewMultiProvider(DefaultBuilders(src, opts), opts), nil
	}

	b, err := NewBuilder(p, src, opts)
	if err != nil {
		return nil, err
	}
	model, err := b.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", p, err)
	}
	return &singleProvider{provider: p, model: model, opts: opts}, nil
}

// singleProvider skips failover and talks to exactly one provider
type singleProvider struct {
	provider Provider
	model    ChatModel
	opts     Options
}

func (s *singleProvider) Invoke(ctx context.Context, messages []Message) (string, error) {
	attemptCtx, cancel := withAttemptTimeout(ctx, s.opts.AttemptTimeout)
	defer cancel()

	text, err := s.model.Invoke(attemptCtx, messages)
	if err != nil {
		return "", fmt.Errorf("%s invoke failed: %w", s.provider, err)
	}
	return text, nil
}

func (s *singleProvider) Close() error {
	return closeModel(s.model)
}

func withAttemptTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func closeModel(m ChatModel) error {
	if c, ok := m.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
