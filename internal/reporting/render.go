package reporting

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/types"
)

const tableSeparator = "|---|---|"

// Render renders report data as markdown. It is a pure function of its
// inputs; the output always ends with exactly one newline.
func Render(rd types.ReportData, lang types.Language) string {
	p := phrasesFor(lang)

	lines := []string{p.overviewHeading, orDash(rd.Overview)}

	lines = append(lines, "", p.strengthsHeading)
	lines = append(lines, table(rd.Strengths, p)...)

	lines = append(lines, "", p.gapsHeading)
	lines = append(lines, table(rd.Gaps, p)...)

	lines = append(lines, "", p.planHeading)
	for i, week := range rd.PlanWeeks {
		title := cell(week.Title)
		if title == "" {
			title = fmt.Sprintf("%s %d", p.weekLabel, i+1)
		}
		lines = append(lines, fmt.Sprintf("**%s %d — %s**", p.weekLabel, i+1, title))
		tasks := week.Tasks
		if len(tasks) == 0 {
			tasks = []string{"-"}
		}
		for _, task := range tasks {
			lines = append(lines, "- "+orDash(cell(task)))
		}
	}

	lines = append(lines, "", p.finalHeading, orDash(rd.FinalNotes))

	return Postprocess(strings.Join(lines, "\n"), lang)
}

func table(items []types.TableItem, p phrases) []string {
	lines := []string{p.tableHeader, tableSeparator}
	if len(items) == 0 {
		return append(lines, fmt.Sprintf("| - | %s |", p.notIdentified))
	}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("| %s | %s |", cell(item.Skill), cell(item.Notes)))
	}
	return lines
}

// cell flattens text onto one line so it cannot open a heading or break a
// table row
var cellBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`)

func cell(s string) string {
	return strings.TrimSpace(cellBreaks.Replace(s))
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
)

// Postprocess normalizes rendered markdown: LF line endings, no trailing
// whitespace, no run of more than one blank line, only the last final-notes
// section kept, and exactly one trailing newline. It is idempotent.
func Postprocess(md string, lang types.Language) string {
	s := strings.ReplaceAll(md, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRun.ReplaceAllString(s, "\n\n")
	s = keepLastSection(s, phrasesFor(lang).finalHeading)
	return strings.TrimRight(s, " \t\n") + "\n"
}

// keepLastSection removes every earlier copy of heading, together with
// everything between the first copy and the last one.
func keepLastSection(s, heading string) string {
	locs := headingPattern(heading).FindAllStringIndex(s, -1)
	if len(locs) < 2 {
		return s
	}
	first := locs[0][0]
	last := locs[len(locs)-1][0]
	return s[:first] + s[last:]
}

// headingPattern matches heading as a whole line
func headingPattern(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(heading) + `[ \t]*$`)
}
