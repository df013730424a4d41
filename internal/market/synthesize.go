package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/prompts"
	"github.com/jonathan/cv-analyzer/internal/schemas"
	"github.com/jonathan/cv-analyzer/internal/skills"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// MarketShape is the JSON shape the model is asked to return
var MarketShape = llm.OutputShape{
	Name: "MarketSkills",
	Fields: []llm.ShapeField{
		{
			Name:        "skills",
			Type:        "string[]",
			Description: fmt.Sprintf("At most %d lowercase concrete tools/skills, no soft skills", types.MaxMarketSkills),
			Required:    true,
		},
	},
}

// snippetSeparator divides snippets in the prompt
const snippetSeparator = "\n---\n"

// SynthesisTask builds the market-skill synthesis task. The fallback scans
// the snippets for known technology names.
func SynthesisTask(role string, snippets []string) llm.Task[skills.SkillList] {

	return llm.Task[skills.SkillList]{
		Name:   "market requirements",
		Schema: schemas.SkillList,
		Normalize: func(l *skills.SkillList) {
			l.Skills = capSkills(types.NormalizeSkills(l.Skills))
		},
		Fallback: func() skills.SkillList {
			return skills.SkillList{Skills: capSkills(types.NormalizeSkills(KeywordScan(snippets)))}
		},
	}.WithPrompt(prompts.Pair(prompts.MarketFile, map[string]string{
		"Role":        role,
		"Snippets":    strings.Join(snippets, snippetSeparator),
		"OutputShape": MarketShape.Instruction(),
	}))
}

func capSkills(s []string) []string {
	if len(s) > types.MaxMarketSkills {
		return s[:types.MaxMarketSkills]
	}
	return s
}

// Requirements searches source for role and distills the snippets into market
// requirements. A search failure, including zero results, is returned as an
// error; an empty skill list after synthesis is not.
func Requirements(ctx context.Context, client llm.ChatModel, source Source, role string) (*types.MarketRequirements, llm.Result[skills.SkillList], error) {
	snippets, err := source.Search(ctx, role)
	if err != nil {
		return nil, llm.Result[skills.SkillList]{}, err
	}
	if len(snippets) == 0 {
		return nil, llm.Result[skills.SkillList]{}, &NoResultsError{Role: role, Source: source.Name()}
	}

	result := llm.Extract(ctx, client, SynthesisTask(role, snippets))

	req := &types.MarketRequirements{
		Role:   role,
		Source: source.Name(),
		Skills: result.Value.Skills,
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}
	req.Cap()
	return req, result, nil
}
