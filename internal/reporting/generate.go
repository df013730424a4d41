package reporting

import (
	"context"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/prompts"
	"github.com/jonathan/cv-analyzer/internal/schemas"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// ReportShape is the JSON shape the model is asked to return
var ReportShape = llm.OutputShape{
	Name: "ReportData",
	Fields: []llm.ShapeField{
		{Name: "overview", Type: "string", Description: "Two to four sentences on fit for the role"},
		{Name: "strengths", Type: `[{"skill": string, "notes": string}]`, Description: "Concrete technical strengths with a short justification"},
		{Name: "gaps", Type: `[{"skill": string, "notes": string}]`, Description: "Concrete technical gaps with a short justification"},
		{Name: "plan_weeks", Type: `[{"title": string, "tasks": string[]}]`, Description: "2-4 weeks, each with 3-5 actionable tasks"},
		{Name: "final_notes", Type: "string"},
	},
}

// ReportTask builds the report synthesis task
func ReportTask(rc Context, lang types.Language) llm.Task[types.ReportData] {
	p := phrasesFor(lang)

	return llm.Task[types.ReportData]{
		Name:   "generate report",
		Schema: schemas.ReportData,
		Normalize: func(rd *types.ReportData) {
			EnforceShape(rd, lang)
		},
		Fallback: func() types.ReportData {
			return Fallback(rc, lang)
		},
	}.WithPrompt(prompts.Pair(prompts.ReportFile, map[string]string{
		"Language":    p.promptLanguage,
		"Context":     rc.JSON(),
		"OutputShape": ReportShape.Instruction(),
	}))
}

// Generate produces shape-valid report data for the context
func Generate(ctx context.Context, client llm.ChatModel, rc Context, lang types.Language) llm.Result[types.ReportData] {
	return llm.Extract(ctx, client, ReportTask(rc, lang))
}

// Make runs report synthesis over the earlier stage outputs and renders the
// final markdown.
func Make(ctx context.Context, client llm.ChatModel, resume *types.StructuredResume, analysis *types.SkillAnalysis, market *types.MarketRequirements, lang types.Language) (string, llm.Result[types.ReportData]) {
	result := Generate(ctx, client, BuildContext(resume, analysis, market), lang)
	return Render(result.Value, lang), result
}
