package llm

import (
	"context"
	"errors"
)

// scriptedModel returns queued responses in order, repeating the last one
type scriptedModel struct {
	responses []string
	errs      []error
	calls     int
	closed    bool
	lastMsgs  []Message
}

func (m *scriptedModel) Invoke(_ context.Context, messages []Message) (string, error) {
	idx := m.calls
	m.calls++
	m.lastMsgs = messages
	if idx < len(m.errs) && m.errs[idx] != nil {
		return "", m.errs[idx]
	}
	if len(m.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func (m *scriptedModel) Close() error {
	m.closed = true
	return nil
}

// countingBuilder returns a builder that fails buildErrs times before yielding model
func countingBuilder(p Provider, model ChatModel, buildErrs int, builds *int) Builder {
	return Builder{
		Provider: p,
		Build: func(_ context.Context) (ChatModel, error) {
			*builds++
			if *builds <= buildErrs {
				return nil, &CredentialError{Provider: string(p), Keys: []string{"KEY"}}
			}
			return model, nil
		},
	}
}

// mapCredentials is an in-memory CredentialSource
type mapCredentials map[string]string

func (m mapCredentials) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}
