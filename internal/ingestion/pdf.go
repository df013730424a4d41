package ingestion

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// extractPDF shells out to pdftotext (poppler-utils) and returns the cleaned
// text of every page.
func extractPDF(ctx context.Context, bin, path string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, "-layout", "-enc", "UTF-8", path, "-")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", &ExtractionError{
				Path:    path,
				Message: "pdftotext not available; install poppler-utils",
				Cause:   err,
			}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "pdftotext command failed"
		}
		return "", &ExtractionError{Path: path, Message: msg, Cause: err}
	}

	// pdftotext separates pages with form feeds
	text := CleanText(strings.ReplaceAll(string(output), "\f", "\n\n"))
	if text == "" {
		return "", &ExtractionError{Path: path, Message: "no extractable text (scanned image PDF?)"}
	}
	return text, nil
}
