// Package types provides type definitions for structured data used throughout the cv-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StructuredResume is the structured view of a candidate document
type StructuredResume struct {
	Name           string       `json:"name,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	SkillsExplicit []string     `json:"skills_explicit"`
	Experiences    []Experience `json:"experiences"`
	Projects       []Project    `json:"projects"`
	Education      string       `json:"education,omitempty"`
}

// Experience represents a single work history entry
type Experience struct {
	Company string   `json:"company,omitempty"`
	Title   string   `json:"title,omitempty"`
	Period  string   `json:"period,omitempty"`
	Bullets []string `json:"bullets"`
}

// Project represents a project listed on the resume
type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tech        []string `json:"tech"`
}

// EnsureDefaults replaces nil list fields with empty slices so callers can range
// over them without nil checks and JSON output carries [] instead of null.
func (r *StructuredResume) EnsureDefaults() {
	if r.SkillsExplicit == nil {
		r.SkillsExplicit = []string{}
	}
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Experiences {
		if r.Experiences[i].Bullets == nil {
			r.Experiences[i].Bullets = []string{}
		}
	}
	for i := range r.Projects {
		if r.Projects[i].Tech == nil {
			r.Projects[i].Tech = []string{}
		}
	}
}
