package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// Section names recognized by the fallback splitter
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// sectionHeadings match English and Indonesian headings followed by ':' or a newline
var sectionHeadings = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{SectionExperience, regexp.MustCompile(`(?i)(work experience|experience|pengalaman kerja)\s*[:\n]`)},
	{SectionProjects, regexp.MustCompile(`(?i)(projects|project|proyek)\s*[:\n]`)},
	{SectionEducation, regexp.MustCompile(`(?i)(education|pendidikan)\s*[:\n]`)},
	{SectionSkills, regexp.MustCompile(`(?i)(skills|kemampuan|keahlian)\s*[:\n]`)},
}

// Sections is the heading-based split of a resume
type Sections map[string]string

type headingMatch struct {
	name       string
	start, end int
}

// SplitSections splits text at the first occurrence of each known heading.
// Text before the first heading is the summary; without any heading the whole
// text is the summary. Section bodies exclude the heading itself.
func SplitSections(text string) Sections {
	sections := Sections{
		SectionSummary:    "",
		SectionExperience: "",
		SectionProjects:   "",
		SectionEducation:  "",
		SectionSkills:     "",
	}
	t := strings.ReplaceAll(text, "\r", "")

	var matches []headingMatch
	for _, h := range sectionHeadings {
		if loc := h.pattern.FindStringIndex(t); loc != nil {
			matches = append(matches, headingMatch{name: h.name, start: loc[0], end: loc[1]})
		}
	}
	if len(matches) == 0 {
		sections[SectionSummary] = strings.TrimSpace(t)
		return sections
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
	sections[SectionSummary] = strings.TrimSpace(t[:matches[0].start])

	for i, m := range matches {
		end := len(t)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		if m.end > end {
			// overlapping headings: the later one wins the text
			continue
		}
		sections[m.name] = strings.TrimSpace(t[m.end:end])
	}
	return sections
}

// ParseSkillList splits a skills blob on commas, semicolons and newlines and
// returns the normalized skill set.
func ParseSkillList(blob string) []string {
	items := llm.SplitList(blob)
	for i, s := range items {
		items[i] = strings.TrimLeft(s, "-*•· \t")
	}
	return types.NormalizeSkills(items)
}

// NaiveResume builds a resume from heading-based sections alone
func NaiveResume(text string) types.StructuredResume {
	sections := SplitSections(text)
	resume := types.StructuredResume{
		Summary:        sections[SectionSummary],
		SkillsExplicit: ParseSkillList(sections[SectionSkills]),
		Education:      sections[SectionEducation],
	}
	resume.EnsureDefaults()
	return resume
}
