package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// GetRunDetail loads a run and its stored stage outputs. A missing run
// returns nil without error.
func (db *DB) GetRunDetail(ctx context.Context, runID uuid.UUID) (*RunDetail, error) {
	run, err := db.GetRun(ctx, runID)
	if err != nil || run == nil {
		return nil, err
	}

	detail := &RunDetail{Run: *run, Errors: []string{}}

	detail.ReportMarkdown, err = db.GetTextArtifact(ctx, runID, StepReportMarkdown)
	if err != nil {
		return nil, err
	}

	if detail.StructuredResume, err = db.GetArtifact(ctx, runID, StepStructuredResume); err != nil {
		return nil, err
	}
	if detail.SkillAnalysis, err = db.GetArtifact(ctx, runID, StepSkillAnalysis); err != nil {
		return nil, err
	}
	if detail.MarketRequirements, err = db.GetArtifact(ctx, runID, StepMarketRequirements); err != nil {
		return nil, err
	}

	errs, err := db.GetArtifact(ctx, runID, StepErrors)
	if err != nil {
		return nil, err
	}
	if errs != nil {
		if err := json.Unmarshal(errs, &detail.Errors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run errors: %w", err)
		}
	}
	return detail, nil
}

// StatusFor maps a terminal error count onto a run status
func StatusFor(errorCount int) string {
	if errorCount > 0 {
		return StatusFailed
	}
	return StatusCompleted
}
