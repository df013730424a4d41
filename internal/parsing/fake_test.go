package parsing

import (
	"context"
	"errors"

	"github.com/jonathan/cv-analyzer/internal/llm"
)

type fakeModel struct {
	response string
	err      error
	messages []llm.Message
}

func (f *fakeModel) Invoke(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var errProvider = errors.New("all providers failed")
