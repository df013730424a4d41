package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedSchemas(t *testing.T) {
	for _, name := range []string{StructuredResume, SkillList, ReportData} {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)
			assert.Contains(t, content, "\"type\": \"object\"")
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidate_StructuredResume(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{"empty object", `{}`, false},
		{"nulls allowed", `{"name": null, "skills_explicit": null, "education": null}`, false},
		{"full", `{"name":"Ana","skills_explicit":["go"],"experiences":[{"company":"Acme","bullets":["built"]}],"projects":[{"name":"x","tech":["redis"]}]}`, false},
		{"skills wrong type", `{"skills_explicit": "go, docker"}`, true},
		{"bullet wrong type", `{"experiences":[{"bullets":[1,2]}]}`, true},
		{"not an object", `["go"]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(StructuredResume, tt.doc)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_SkillList(t *testing.T) {
	assert.NoError(t, Validate(SkillList, `{"skills": ["go", "docker"]}`))
	assert.NoError(t, Validate(SkillList, `{"skills": []}`))

	err := Validate(SkillList, `{"items": ["go"]}`)
	require.Error(t, err)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Greater(t, len(valErr.Errors), 0)
}

func TestValidate_ReportData(t *testing.T) {
	valid := `{"overview":"ok","strengths":[{"skill":"go","notes":"used daily"}],"gaps":[],"plan_weeks":[{"title":"w1","tasks":["a"]}],"final_notes":"done"}`
	assert.NoError(t, Validate(ReportData, valid))

	missingNotes := `{"strengths":[{"skill":"go"}]}`
	assert.Error(t, Validate(ReportData, missingNotes))

	wrongOverview := `{"overview": 5}`
	assert.Error(t, Validate(ReportData, wrongOverview))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SkillList, `{ invalid json }`)
	require.Error(t, err)

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}
