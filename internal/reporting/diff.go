// Package reporting synthesizes the gap report: it compares candidate and
// market skills, asks the model for report sections, enforces the report
// shape and renders markdown in English or Indonesian.
package reporting

import (
	"encoding/json"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// Diff compares candidate skills C with market skills M:
// strengths = C∩M, gaps = M∖C, extras = C∖M, each lowercase and sorted.
func Diff(candidate, market []string) types.SkillDiff {
	c := types.NormalizeSkills(candidate)
	m := types.NormalizeSkills(market)

	inC := make(map[string]struct{}, len(c))
	for _, s := range c {
		inC[s] = struct{}{}
	}
	inM := make(map[string]struct{}, len(m))
	for _, s := range m {
		inM[s] = struct{}{}
	}

	diff := types.SkillDiff{Strengths: []string{}, Gaps: []string{}, Extras: []string{}}
	for _, s := range c {
		if _, ok := inM[s]; ok {
			diff.Strengths = append(diff.Strengths, s)
		} else {
			diff.Extras = append(diff.Extras, s)
		}
	}
	for _, s := range m {
		if _, ok := inC[s]; !ok {
			diff.Gaps = append(diff.Gaps, s)
		}
	}
	return diff
}

// Context limits
const (
	maxContextSummary  = 800
	maxFallbackSummary = 600
)

// Context is everything the report synthesis sees
type Context struct {
	Summary  string          `json:"summary"`
	Explicit []string        `json:"explicit"`
	Implicit []string        `json:"implicit"`
	Market   []string        `json:"market"`
	Diff     types.SkillDiff `json:"diff"`
	Role     string          `json:"role"`
	Source   string          `json:"source"`
}

// BuildContext assembles the report context from the earlier stage outputs
func BuildContext(resume *types.StructuredResume, analysis *types.SkillAnalysis, market *types.MarketRequirements) Context {
	explicit := types.NormalizeSkills(analysis.ExplicitSkills)
	implicit := types.NormalizeSkills(analysis.ImplicitSkills)
	marketSkills := types.NormalizeSkills(market.Skills)

	candidate := append(append([]string{}, explicit...), implicit...)
	return Context{
		Summary:  truncate(resume.Summary, maxContextSummary),
		Explicit: explicit,
		Implicit: implicit,
		Market:   marketSkills,
		Diff:     Diff(candidate, marketSkills),
		Role:     market.Role,
		Source:   market.Source,
	}
}

// JSON renders the context for the prompt
func (c Context) JSON() string {
	data, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
