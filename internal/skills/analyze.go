package skills

import (
	"context"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/prompts"
	"github.com/jonathan/cv-analyzer/internal/schemas"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// SkillList is the model output of the enrichment task
type SkillList struct {
	Skills []string `json:"skills"`
}

// SkillListShape is the JSON shape the model is asked to return
var SkillListShape = llm.OutputShape{
	Name: "SkillList",
	Fields: []llm.ShapeField{
		{Name: "skills", Type: "string[]", Description: "Additional lowercase technical skills", Required: true},
	},
}

// Provenance notes recorded on the analysis
const (
	NotesEnriched = "Implicit skills inferred via mapping; extra explicit skills extracted by LLM."
	NotesMapped   = "Implicit skills inferred via mapping; LLM enrichment unavailable."
)

// Narrative joins the free-text parts of a resume the model reads for extra skills
func Narrative(r *types.StructuredResume) string {
	parts := []string{r.Summary}
	for _, e := range r.Experiences {
		parts = append(parts, strings.Join(e.Bullets, "\n"))
	}
	for _, p := range r.Projects {
		parts = append(parts, p.Description)
	}

	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// EnrichTask builds the skill enrichment task. Successful output keeps only
// tokens that are new relative to explicit and pass IsTechSkill.
func EnrichTask(narrative string, explicit []string) llm.Task[SkillList] {

	known := make(map[string]struct{}, len(explicit))
	for _, s := range explicit {
		known[s] = struct{}{}
	}

	return llm.Task[SkillList]{
		Name:   "analyze skills",
		Schema: schemas.SkillList,
		Normalize: func(l *SkillList) {
			extra := make([]string, 0, len(l.Skills))
			for _, s := range types.NormalizeSkills(l.Skills) {
				if _, dup := known[s]; dup || !IsTechSkill(s) {
					continue
				}
				extra = append(extra, s)
			}
			l.Skills = extra
		},
		Fallback: func() SkillList {
			return SkillList{Skills: []string{}}
		},
	}.WithPrompt(prompts.Pair(prompts.SkillsFile, map[string]string{
		"Narrative":     narrative,
		"CurrentSkills": strings.Join(explicit, ", "),
		"OutputShape":   SkillListShape.Instruction(),
	}))
}

// Analyze builds the skill analysis for a resume. Explicit skills are the
// resume's skills plus model-proposed extras; implicit skills come from
// InferImplicit over that combined set. Model failures only drop the extras.
func Analyze(ctx context.Context, client llm.ChatModel, resume *types.StructuredResume) (*types.SkillAnalysis, llm.Result[SkillList]) {
	explicit := types.NormalizeSkills(resume.SkillsExplicit)

	result := llm.Extract(ctx, client, EnrichTask(Narrative(resume), explicit))

	combined := types.NormalizeSkills(append(append([]string{}, explicit...), result.Value.Skills...))
	notes := NotesEnriched
	if result.UsedFallback() {
		notes = NotesMapped
	}

	return &types.SkillAnalysis{
		ExplicitSkills: combined,
		ImplicitSkills: InferImplicit(combined),
		Notes:          notes,
	}, result
}
