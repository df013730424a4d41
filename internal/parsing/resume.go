// Package parsing structures raw resume text into a StructuredResume using LLM
// extraction, with a regex section splitter as the deterministic fallback.
package parsing

import (
	"context"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/prompts"
	"github.com/jonathan/cv-analyzer/internal/schemas"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// ResumeShape is the JSON shape the model is asked to return
var ResumeShape = llm.OutputShape{
	Name: "StructuredResume",
	Fields: []llm.ShapeField{
		{Name: "name", Type: "string|null", Description: "Candidate full name"},
		{Name: "summary", Type: "string|null", Description: "Professional summary"},
		{Name: "skills_explicit", Type: "string[]", Description: "Lowercase concrete technologies only", Required: true},
		{Name: "experiences", Type: `[{"company": string|null, "title": string|null, "period": string|null, "bullets": string[]}]`},
		{Name: "projects", Type: `[{"name": string|null, "description": string|null, "tech": string[]}]`},
		{Name: "education", Type: "string|null"},
	},
}

// ResumeTask builds the resume structuring task for the given document text
func ResumeTask(text string) llm.Task[types.StructuredResume] {

	return llm.Task[types.StructuredResume]{
		Name:      "parse resume",
		Schema:    schemas.StructuredResume,
		Normalize: NormalizeResume,
		Fallback: func() types.StructuredResume {
			return NaiveResume(text)
		},
	}.WithPrompt(prompts.Pair(prompts.ResumeFile, map[string]string{
		"ResumeText":  text,
		"OutputShape": ResumeShape.Instruction(),
	}))
}

// ParseResume structures text. It always returns a usable resume; the result
// path records whether the model output or the fallback produced it.
func ParseResume(ctx context.Context, client llm.ChatModel, text string) llm.Result[types.StructuredResume] {
	return llm.Extract(ctx, client, ResumeTask(text))
}

// NormalizeResume trims every string field, normalizes the explicit skill set
// and replaces nil lists with empty ones.
func NormalizeResume(r *types.StructuredResume) {
	r.Name = strings.TrimSpace(r.Name)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Education = strings.TrimSpace(r.Education)
	r.SkillsExplicit = types.NormalizeSkills(r.SkillsExplicit)

	for i := range r.Experiences {
		e := &r.Experiences[i]
		e.Company = strings.TrimSpace(e.Company)
		e.Title = strings.TrimSpace(e.Title)
		e.Period = strings.TrimSpace(e.Period)
		e.Bullets = trimAll(e.Bullets)
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		p.Tech = types.NormalizeSkills(p.Tech)
	}
	r.EnsureDefaults()
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
