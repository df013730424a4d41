package ingestion

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before extracting text from an HTML resume
const noiseSelectors = "nav, footer, script, style, noscript, iframe, .sidebar, .cookie-banner"

// blockSelectors get a trailing newline so their text stays on its own line
const blockSelectors = "p, div, li, h1, h2, h3, h4, h5, h6, tr, br, section, article"

func readHTML(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text, err := ExtractHTMLText(string(content))
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "invalid HTML", Cause: err}
	}
	if text == "" {
		return "", &ExtractionError{Path: path, Message: "no text content in HTML body"}
	}
	return text, nil
}

// ExtractHTMLText parses HTML and returns the visible body text, one block
// element per line.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	return CleanText(collapseLines(body.Text())), nil
}

// collapseLines trims every line and drops the empty ones
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
