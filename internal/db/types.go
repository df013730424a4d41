package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	DocumentPath string     `json:"document_path"`
	TargetRole   string     `json:"target_role"`
	Language     string     `json:"language"`
	Provider     string     `json:"provider"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants, one per stored stage output
const (
	StepRawText            = "raw_text"
	StepStructuredResume   = "structured_resume"
	StepSkillAnalysis      = "skill_analysis"
	StepMarketRequirements = "market_requirements"
	StepReportMarkdown     = "report_markdown"
	StepErrors             = "errors"
)

// Artifact category constants
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryMarket    = "market"
	CategoryReport    = "report"
)

// RunDetail is a run together with its stored outputs
type RunDetail struct {
	Run
	ReportMarkdown     string          `json:"report_markdown,omitempty"`
	Errors             []string        `json:"errors"`
	StructuredResume   json.RawMessage `json:"structured_resume,omitempty"`
	SkillAnalysis      json.RawMessage `json:"skill_analysis,omitempty"`
	MarketRequirements json.RawMessage `json:"market_requirements,omitempty"`
}
