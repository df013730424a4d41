package reporting

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestValidate_WellFormed(t *testing.T) {
	md := Render(Fallback(Context{}, types.LanguageEnglish), types.LanguageEnglish)
	assert.Empty(t, Validate(md, types.LanguageEnglish))
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want []string
	}{
		{
			name: "missing section",
			md:   "## Overview\nx\n## Strengths\nx\n## Skill Gaps\nx\n## Final Notes\nx\n",
			want: []string{"Missing section: ## Actionable Upskilling Plan"},
		},
		{
			name: "duplicated final section",
			md:   "## Overview\nx\n## Strengths\nx\n## Skill Gaps\nx\n## Actionable Upskilling Plan\nx\n## Final Notes\nx\n## Final Notes\ny\n",
			want: []string{"Final section appears not exactly once."},
		},
		{
			name: "empty section",
			md:   "## Overview\n\n## Strengths\nx\n## Skill Gaps\nx\n## Actionable Upskilling Plan\nx\n## Final Notes\n  \n",
			want: []string{"Empty section: ## Overview", "Empty section: ## Final Notes"},
		},
		{
			name: "missing final section",
			md:   "## Overview\nx\n## Strengths\nx\n## Skill Gaps\nx\n## Actionable Upskilling Plan\nx\n",
			want: []string{"Missing section: ## Final Notes", "Final section appears not exactly once."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.md, types.LanguageEnglish))
		})
	}
}

func TestValidate_LanguageMismatch(t *testing.T) {
	md := Render(Fallback(Context{}, types.LanguageEnglish), types.LanguageEnglish)
	issues := Validate(md, types.LanguageIndonesian)

	assert.Len(t, issues, 6)
	assert.Equal(t, "Missing section: ## Ikhtisar", issues[0])
}

// An issue is reported for a heading only if it is missing, duplicated
// (final notes) or empty; a present heading with content is never flagged.
func TestValidate_IssuesOnlyForRealProblems(t *testing.T) {
	md := Render(sampleReport(), types.LanguageEnglish)
	for _, h := range Headings(types.LanguageEnglish) {
		without := strings.Replace(md, h+"\n", "", 1)
		issues := Validate(without, types.LanguageEnglish)
		assert.Contains(t, issues, "Missing section: "+h)
		for _, issue := range issues {
			assert.NotEqual(t, "Empty section: "+h, issue)
		}
	}
}

func TestValidate_EmptyReportMissesEveryHeading(t *testing.T) {
	for _, lang := range []types.Language{types.LanguageEnglish, types.LanguageIndonesian} {
		t.Run(string(lang), func(t *testing.T) {
			headings := Headings(lang)
			issues := Validate("", lang)

			assert.Len(t, headings, 5)
			for i, h := range headings {
				assert.Equal(t, "Missing section: "+h, issues[i])
			}
			assert.Equal(t, "Final section appears not exactly once.", issues[len(headings)])
		})
	}
}
