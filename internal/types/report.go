package types

// ReportData is the structured content of a gap report before rendering
type ReportData struct {
	Overview   string      `json:"overview"`
	Strengths  []TableItem `json:"strengths"`
	Gaps       []TableItem `json:"gaps"`
	PlanWeeks  []WeekPlan  `json:"plan_weeks"`
	FinalNotes string      `json:"final_notes"`
}

// TableItem is one row of the strengths or gaps table
type TableItem struct {
	Skill string `json:"skill"`
	Notes string `json:"notes"`
}

// WeekPlan is one week of the upskilling plan
type WeekPlan struct {
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

// Plan length bounds enforced before rendering
const (
	MinPlanWeeks = 2
	MaxPlanWeeks = 4
)

// SkillDiff compares candidate skills with market skills
type SkillDiff struct {
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Extras    []string `json:"extras"`
}
