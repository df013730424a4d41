package llm

import (
	"context"
	"errors"
	"log/slog"
)

// MultiProvider tries providers in order until one succeeds.
//
// Provider clients are built lazily and memoized per slot: once a slot has a
// live client it is reused by later calls. A slot whose build failed stays
// empty and is built again on the next Invoke. A MultiProvider belongs to a
// single pipeline run and is not safe for concurrent use.
type MultiProvider struct {
	builders  []Builder
	instances []ChatModel
	failures  []Failure
	opts      Options
}

// NewMultiProvider creates a failover client over the given builders
func NewMultiProvider(builders []Builder, opts Options) *MultiProvider {
	return &MultiProvider{
		builders:  builders,
		instances: make([]ChatModel, len(builders)),
		opts:      opts,
	}
}

// Invoke returns the first successful provider response. When every provider
// fails it returns a *ProviderError listing each failure in provider order.
func (m *MultiProvider) Invoke(ctx context.Context, messages []Message) (string, error) {
	m.failures = m.failures[:0]
	logger := m.opts.logger()

	var canceled error
	for i, b := range m.builders {
		if err := ctx.Err(); err != nil {
			canceled = err
			break
		}

		if m.instances[i] == nil {
			model, err := b.Build(ctx)
			if err != nil {
				m.record(i, b.Provider, PhaseBuild, err)
				logger.Warn("llm provider build failed",
					slog.String("provider", string(b.Provider)),
					slog.Int("index", i),
					slog.Any("error", err))
				continue
			}
			m.instances[i] = model
		}

		text, err := m.invokeOne(ctx, m.instances[i], messages)
		if err != nil {
			m.record(i, b.Provider, PhaseInvoke, err)
			logger.Warn("llm provider invoke failed",
				slog.String("provider", string(b.Provider)),
				slog.Int("index", i),
				slog.Any("error", err))
			continue
		}

		if i > 0 {
			logger.Info("llm failover succeeded",
				slog.String("provider", string(b.Provider)),
				slog.Int("index", i))
		}
		return text, nil
	}

	failures := make([]Failure, len(m.failures))
	copy(failures, m.failures)
	return "", &ProviderError{Failures: failures, Canceled: canceled}
}

func (m *MultiProvider) invokeOne(ctx context.Context, model ChatModel, messages []Message) (string, error) {
	attemptCtx, cancel := withAttemptTimeout(ctx, m.opts.AttemptTimeout)
	defer cancel()
	return model.Invoke(attemptCtx, messages)
}

func (m *MultiProvider) record(index int, p Provider, phase Phase, err error) {
	m.failures = append(m.failures, Failure{Index: index, Provider: p, Phase: phase, Err: err})
}

// Errors returns the failures recorded by the most recent Invoke, in order
func (m *MultiProvider) Errors() []string {
	out := make([]string, 0, len(m.failures))
	for _, f := range m.failures {
		out = append(out, f.String())
	}
	return out
}

// Built reports whether the provider slot at index holds a live client
func (m *MultiProvider) Built(index int) bool {
	return index >= 0 && index < len(m.instances) && m.instances[index] != nil
}

// Close releases every live provider client
func (m *MultiProvider) Close() error {
	var errs []error
	for i, model := range m.instances {
		if model == nil {
			continue
		}
		if err := closeModel(model); err != nil {
			errs = append(errs, err)
		}
		m.instances[i] = nil
	}
	return errors.Join(errs...)
}
