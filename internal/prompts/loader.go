// Package prompts holds the prompt templates of the LLM-backed sub-tasks.
// Each sub-task has one embedded JSON file with a "system" and a "user"
// template; placeholders take the form {{.Key}}.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Prompt files, one per LLM-backed sub-task
const (
	ResumeFile = "resume.json"
	SkillsFile = "skills.json"
	MarketFile = "market.json"
	ReportFile = "report.json"
)

// Template is the system and user prompt of one sub-task
type Template struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Render fills both prompts from data
func (t Template) Render(data map[string]string) (system, user string) {
	return Format(t.System, data), Format(t.User, data)
}

var loaded sync.Map // file name -> Template

// Load returns the parsed template of an embedded prompt file. Both prompts
// must be present and non-empty.
func Load(filename string) (Template, error) {
	if t, ok := loaded.Load(filename); ok {
		return t.(Template), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	if strings.TrimSpace(t.System) == "" || strings.TrimSpace(t.User) == "" {
		return Template{}, fmt.Errorf("prompt file %s needs both a system and a user prompt", filename)
	}

	loaded.Store(filename, t)
	return t, nil
}

// Pair loads a prompt file and renders it with data
func Pair(filename string, data map[string]string) (system, user string, err error) {
	t, err := Load(filename)
	if err != nil {
		return "", "", err
	}
	system, user = t.Render(data)
	return system, user, nil
}

// Format substitutes {{.Key}} placeholders with values from data in a single
// pass. Placeholders without a value are left as they are.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
