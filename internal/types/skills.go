package types

import (
	"sort"
	"strings"
)

// SkillAnalysis holds the candidate's explicit and inferred implicit skills.
// Both lists are lowercase, deduplicated and sorted.
type SkillAnalysis struct {
	ExplicitSkills []string `json:"explicit_skills"`
	ImplicitSkills []string `json:"implicit_skills"`
	Notes          string   `json:"notes,omitempty"`
}

// MarketRequirements is the market demand for a target role
type MarketRequirements struct {
	Role   string   `json:"role"`
	Source string   `json:"source"`
	Skills []string `json:"skills"`
}

// MaxMarketSkills caps the number of market skills kept for a role
const MaxMarketSkills = 30

// NormalizeSkills lowercases and trims every entry, drops empties and
// duplicates, and returns the result sorted. It never returns nil.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Cap truncates market skills to MaxMarketSkills
func (m *MarketRequirements) Cap() {
	if len(m.Skills) > MaxMarketSkills {
		m.Skills = m.Skills[:MaxMarketSkills]
	}
}
