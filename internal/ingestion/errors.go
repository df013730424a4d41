package ingestion

import "fmt"

// FormatError is returned for a document whose extension has no reader
type FormatError struct {
	Path string
	Ext  string
}

func (e *FormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported document format %s for %s (supported: %s)", ext, e.Path, supportedList())
}

// ExtractionError is returned when a document was read but yielded no text
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
