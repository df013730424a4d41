package types

import (
	"fmt"

	"github.com/google/uuid"
)

// PipelineState is the single unit of work threaded through every pipeline stage.
// It is owned by exactly one pipeline invocation.
type PipelineState struct {
	RunID uuid.UUID `json:"run_id"`

	// Input
	DocumentPath string `json:"document_path"`
	TargetRole   string `json:"target_role"`
	Language     string `json:"language,omitempty"`
	Provider     string `json:"provider,omitempty"`

	// Intermediate
	RawText            string              `json:"raw_text,omitempty"`
	StructuredResume   *StructuredResume   `json:"structured_resume,omitempty"`
	SkillAnalysis      *SkillAnalysis      `json:"skill_analysis,omitempty"`
	MarketRequirements *MarketRequirements `json:"market_requirements,omitempty"`

	// Output
	ReportMarkdown string   `json:"report_markdown,omitempty"`
	Errors         []string `json:"errors"`
}

// NewPipelineState creates a state for a fresh run
func NewPipelineState(documentPath, targetRole, language, provider string) *PipelineState {
	return &PipelineState{
		RunID:        uuid.New(),
		DocumentPath: documentPath,
		TargetRole:   targetRole,
		Language:     language,
		Provider:     provider,
		Errors:       []string{},
	}
}

// Failed reports whether any stage has recorded an error
func (s *PipelineState) Failed() bool {
	return len(s.Errors) > 0
}

// AppendError records a stage error. Errors are append-only.
func (s *PipelineState) AppendError(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}
