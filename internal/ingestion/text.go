package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`[ \t\x{00a0}]+`)
	excessBlank = regexp.MustCompile(`\n{3,}`)
)

// bulletPrefixes mark list items whose indentation is kept
var bulletPrefixes = []string{"- ", "* ", "• ", "· "}

// CleanText normalizes extracted document text while preserving structure:
// line endings become LF, runs of spaces collapse, trailing whitespace is
// removed and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlank.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line, keeping headings flush and bullet indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return multiSpace.ReplaceAllString(trimmed, " ")
	}

	indent := ""
	if isBulletLine(trimmed) {
		indent = strings.Repeat(" ", len(line)-len(trimmed))
	}
	return indent + multiSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
