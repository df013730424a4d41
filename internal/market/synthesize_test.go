package market

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	response string
	err      error
	messages []llm.Message
	calls    int
}

func (f *fakeModel) Invoke(_ context.Context, messages []llm.Message) (string, error) {
	f.calls++
	f.messages = messages
	return f.response, f.err
}

func TestKeywordScan(t *testing.T) {
	snippets := []string{
		"backend roles ask for go, postgresql and kubernetes",
		"experience with c++ or c# is a plus; ci/cd pipelines",
		"good-to-have: docker. we also drag and drop",
	}

	assert.Equal(t,
		[]string{"c#", "c++", "ci/cd", "docker", "go", "kubernetes", "postgresql"},
		KeywordScan(snippets))
}

func TestKeywordScan_NoMatches(t *testing.T) {
	assert.Empty(t, KeywordScan([]string{"communication and teamwork"}))
}

func TestRequirements_Parsed(t *testing.T) {
	source := &staticSource{name: SourceTavily, snippets: []string{"kubernetes and go", "terraform"}}
	model := &fakeModel{response: `{"skills": ["Terraform", "go", "Kubernetes", "go"]}`}

	req, result, err := Requirements(context.Background(), model, source, "platform engineer")
	require.NoError(t, err)

	assert.Equal(t, llm.PathParsed, result.Path)
	assert.Equal(t, "platform engineer", req.Role)
	assert.Equal(t, SourceTavily, req.Source)
	assert.Equal(t, []string{"go", "kubernetes", "terraform"}, req.Skills)

	require.Len(t, model.messages, 2)
	assert.Contains(t, model.messages[1].Content, "kubernetes and go\n---\nterraform")
	assert.Contains(t, model.messages[1].Content, "TARGET ROLE: platform engineer")
}

func TestRequirements_CapsAtThirty(t *testing.T) {
	var skills []string
	for i := 0; i < 45; i++ {
		skills = append(skills, fmt.Sprintf("%q", fmt.Sprintf("tool%02d", i)))
	}
	model := &fakeModel{response: `{"skills": [` + joinComma(skills) + `]}`}
	source := &staticSource{name: SourceTavily, snippets: []string{"x"}}

	req, _, err := Requirements(context.Background(), model, source, "sre")
	require.NoError(t, err)
	require.Len(t, req.Skills, types.MaxMarketSkills)
	assert.Equal(t, "tool00", req.Skills[0])
	assert.Equal(t, "tool29", req.Skills[29])
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

func TestRequirements_FallbackKeywordScan(t *testing.T) {
	source := &staticSource{name: SourceGoogle, snippets: []string{"we use docker and redis daily"}}
	model := &fakeModel{err: errors.New("all providers failed")}

	req, result, err := Requirements(context.Background(), model, source, "backend")
	require.NoError(t, err)

	assert.Equal(t, llm.PathFallback, result.Path)
	assert.Equal(t, []string{"docker", "redis"}, req.Skills)
	assert.Equal(t, SourceGoogle, req.Source)
}

func TestRequirements_EmptySkillsTolerated(t *testing.T) {
	source := &staticSource{name: SourceTavily, snippets: []string{"soft skills only"}}
	model := &fakeModel{response: `{"skills": []}`}

	req, result, err := Requirements(context.Background(), model, source, "manager")
	require.NoError(t, err)
	assert.Equal(t, llm.PathParsed, result.Path)
	assert.NotNil(t, req.Skills)
	assert.Empty(t, req.Skills)
}

func TestRequirements_SearchFailureIsFatal(t *testing.T) {
	source := &staticSource{name: SourceTavily, err: &NoResultsError{Role: "x", Source: SourceTavily}}
	model := &fakeModel{response: `{"skills": ["go"]}`}

	req, _, err := Requirements(context.Background(), model, source, "x")

	var noResults *NoResultsError
	require.True(t, errors.As(err, &noResults))
	assert.Nil(t, req)
	assert.Equal(t, 0, model.calls, "no synthesis without snippets")
}

func TestRequirements_EmptySnippetListIsFatal(t *testing.T) {
	source := &staticSource{name: SourceTavily}

	_, _, err := Requirements(context.Background(), &fakeModel{}, source, "x")
	var noResults *NoResultsError
	assert.True(t, errors.As(err, &noResults))
}
