package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/cv-analyzer/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skillList struct {
	Skills []string `json:"skills"`
}

func skillTask(normalized *int) Task[skillList] {
	return Task[skillList]{
		Name:     "skills",
		Messages: []Message{SystemMessage("extract"), UserMessage("cv text")},
		Schema:   schemas.SkillList,
		Normalize: func(s *skillList) {
			*normalized++
			for i := range s.Skills {
				s.Skills[i] = strings.ToLower(s.Skills[i])
			}
		},
		Fallback: func() skillList {
			return skillList{Skills: []string{"fallback"}}
		},
	}
}

func TestExtract_Paths(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantPath   Path
		wantSkills []string
	}{
		{
			name:       "plain JSON",
			response:   `{"skills": ["Go", "SQL"]}`,
			wantPath:   PathParsed,
			wantSkills: []string{"go", "sql"},
		},
		{
			name:       "fenced JSON",
			response:   "```json\n{\"skills\": [\"Docker\"]}\n```",
			wantPath:   PathParsed,
			wantSkills: []string{"docker"},
		},
		{
			name:       "JSON wrapped in commentary",
			response:   "Sure! Here is the result:\n{\"skills\": [\"Kubernetes\"]}\nLet me know if you need more.",
			wantPath:   PathParsed,
			wantSkills: []string{"kubernetes"},
		},
		{
			name:       "stray closing brace in trailing prose",
			response:   `{"skills": ["Python"]} and that is all }`,
			wantPath:   PathSalvaged,
			wantSkills: []string{"python"},
		},
		{
			name:       "no JSON at all",
			response:   "I cannot help with that.",
			wantPath:   PathFallback,
			wantSkills: []string{"fallback"},
		},
		{
			name:       "truncated JSON",
			response:   `{"skills": ["Go", "Ru`,
			wantPath:   PathFallback,
			wantSkills: []string{"fallback"},
		},
		{
			name:       "schema violation",
			response:   `{"tools": ["Go"]}`,
			wantPath:   PathFallback,
			wantSkills: []string{"fallback"},
		},
		{
			name:       "wrong item type",
			response:   `{"skills": [1, 2]}`,
			wantPath:   PathFallback,
			wantSkills: []string{"fallback"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var normalized int
			model := &scriptedModel{responses: []string{tt.response}}

			result := Extract(context.Background(), model, skillTask(&normalized))

			assert.Equal(t, tt.wantPath, result.Path)
			assert.Equal(t, tt.wantSkills, result.Value.Skills)
			assert.Equal(t, 1, model.calls, "the model is invoked exactly once")

			if tt.wantPath == PathFallback {
				assert.Error(t, result.Err)
				assert.True(t, result.UsedFallback())
				assert.Equal(t, 0, normalized, "normalize runs only on success")
			} else {
				assert.NoError(t, result.Err)
				assert.False(t, result.UsedFallback())
				assert.Equal(t, 1, normalized)
			}
		})
	}
}

func TestExtract_InvokeError(t *testing.T) {
	var normalized int
	cause := errors.New("quota exceeded")
	model := &scriptedModel{errs: []error{cause}}

	result := Extract(context.Background(), model, skillTask(&normalized))

	assert.Equal(t, PathFallback, result.Path)
	assert.Equal(t, []string{"fallback"}, result.Value.Skills)
	assert.True(t, errors.Is(result.Err, cause))
	assert.Contains(t, result.Err.Error(), "skills: invoke failed")
}

func TestExtract_NilClient(t *testing.T) {
	var normalized int
	result := Extract[skillList](context.Background(), nil, skillTask(&normalized))
	assert.Equal(t, PathFallback, result.Path)
	assert.Error(t, result.Err)
}

func TestExtract_ValidateHookRejects(t *testing.T) {
	var normalized int
	task := skillTask(&normalized)
	task.Validate = func(s *skillList) error {
		if len(s.Skills) == 0 {
			return errors.New("no skills")
		}
		return nil
	}
	model := &scriptedModel{responses: []string{`{"skills": []}`}}

	result := Extract(context.Background(), model, task)

	assert.Equal(t, PathFallback, result.Path)
	assert.Contains(t, result.Err.Error(), "no skills")
}

func TestExtract_NoSchema(t *testing.T) {
	task := Task[map[string]any]{
		Name:     "free",
		Fallback: func() map[string]any { return nil },
	}
	model := &scriptedModel{responses: []string{`{"anything": true}`}}

	result := Extract(context.Background(), model, task)

	require.Equal(t, PathParsed, result.Path)
	assert.Equal(t, true, result.Value["anything"])
}

func TestExtract_PassesMessages(t *testing.T) {
	var normalized int
	model := &scriptedModel{responses: []string{`{"skills": []}`}}

	Extract(context.Background(), model, skillTask(&normalized))

	require.Len(t, model.lastMsgs, 2)
	assert.Equal(t, RoleSystem, model.lastMsgs[0].Role)
	assert.Equal(t, "cv text", model.lastMsgs[1].Content)
}

func TestExtract_PromptUnavailableFallsBack(t *testing.T) {
	var normalized int
	model := &scriptedModel{responses: []string{`{"skills": ["go"]}`}}
	task := skillTask(&normalized).WithPrompt("", "", errors.New("prompt file missing"))

	result := Extract(context.Background(), model, task)

	assert.Equal(t, PathFallback, result.Path)
	assert.Equal(t, []string{"fallback"}, result.Value.Skills)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "skills: prompt unavailable: prompt file missing")
	assert.Equal(t, 0, model.calls, "the model is not called without a prompt")
	assert.Equal(t, 0, normalized)
}

func TestTaskWithPrompt(t *testing.T) {
	var normalized int
	task := skillTask(&normalized).WithPrompt("sys", "usr", nil)

	require.NoError(t, task.PromptErr)
	assert.Equal(t, []Message{SystemMessage("sys"), UserMessage("usr")}, task.Messages)
}
