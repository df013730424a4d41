package reporting

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// Validate checks a rendered report and returns human-readable issues: a
// missing heading, a final-notes heading that does not appear exactly once,
// or a heading whose section body is empty. An empty result means the report
// is well-formed. Validate is advisory and never fails.
func Validate(md string, lang types.Language) []string {
	headings := Headings(lang)
	final := phrasesFor(lang).finalHeading
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")

	isHeading := make(map[string]bool, len(headings))
	for _, h := range headings {
		isHeading[h] = true
	}

	issues := []string{}
	for _, h := range headings {
		if !containsLine(lines, h) {
			issues = append(issues, fmt.Sprintf("Missing section: %s", h))
		}
	}

	if n := countLines(lines, final); n != 1 {
		issues = append(issues, "Final section appears not exactly once.")
	}

	for _, h := range headings {
		start := indexLine(lines, h)
		if start < 0 {
			continue
		}
		empty := true
		for _, line := range lines[start+1:] {
			trimmed := strings.TrimSpace(line)
			if isHeading[trimmed] {
				break
			}
			if trimmed != "" {
				empty = false
				break
			}
		}
		if empty {
			issues = append(issues, fmt.Sprintf("Empty section: %s", h))
		}
	}
	return issues
}

func indexLine(lines []string, heading string) int {
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			return i
		}
	}
	return -1
}

func containsLine(lines []string, heading string) bool {
	return indexLine(lines, heading) >= 0
}

func countLines(lines []string, heading string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			n++
		}
	}
	return n
}
