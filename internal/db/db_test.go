package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepRawText,
		StepStructuredResume,
		StepSkillAnalysis,
		StepMarketRequirements,
		StepReportMarkdown,
		StepErrors,
	}

	seen := map[string]bool{}
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "duplicate step %s", step)
		seen[step] = true
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusFor(0))
	assert.Equal(t, StatusFailed, StatusFor(1))
	assert.Equal(t, StatusFailed, StatusFor(3))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS analysis_runs")
	assert.Contains(t, schemaSQL, "UNIQUE (run_id, step)")
}

func TestRunDetail_JSONOmitsMissingArtifacts(t *testing.T) {
	detail := RunDetail{
		Run:    Run{Status: StatusFailed, TargetRole: "Data Engineer"},
		Errors: []string{"LoadDocument error: boom"},
	}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "failed", decoded["status"])
	assert.Equal(t, "Data Engineer", decoded["target_role"])
	assert.NotContains(t, decoded, "structured_resume")
	assert.NotContains(t, decoded, "report_markdown")
	assert.Len(t, decoded["errors"], 1)
}
