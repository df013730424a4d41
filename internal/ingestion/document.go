// Package ingestion loads candidate documents from disk and returns their
// cleaned text.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Format is a supported document format
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

var formatsByExt = map[string]Format{
	".txt":  FormatText,
	".md":   FormatText,
	".pdf":  FormatPDF,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

func supportedList() string {
	exts := make([]string, 0, len(formatsByExt))
	for ext := range formatsByExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// DetectFormat maps a path's extension onto a Format, case-insensitively
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatsByExt[ext]
	if !ok {
		return "", &FormatError{Path: path, Ext: ext}
	}
	return format, nil
}

// Document is a loaded candidate document
type Document struct {
	Path     string `json:"path"`
	Format   Format `json:"format"`
	Text     string `json:"-"`
	Hash     string `json:"hash"`      // SHA256 hex digest of Text
	LoadedAt string `json:"loaded_at"` // RFC3339 format
}

// Loader turns a document path into text
type Loader interface {
	Load(ctx context.Context, path string) (*Document, error)
}

// FileLoader reads documents from the local filesystem
type FileLoader struct {
	// PDFToText is the pdftotext binary; empty uses "pdftotext" from PATH
	PDFToText string
}

// NewFileLoader creates a loader using pdftotext from PATH
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load dispatches on the file extension. Unsupported extensions fail with a
// *FormatError before the file is opened; a PDF or HTML document that yields
// no text fails with an *ExtractionError.
func (l *FileLoader) Load(ctx context.Context, path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(ctx, l.pdfToText(), path)
	case FormatHTML:
		text, err = readHTML(path)
	default:
		text, err = readText(path)
	}
	if err != nil {
		return nil, err
	}

	return newDocument(path, format, text), nil
}

func (l *FileLoader) pdfToText() string {
	if l == nil || l.PDFToText == "" {
		return "pdftotext"
	}
	return l.PDFToText
}

func newDocument(path string, format Format, text string) *Document {
	hash := sha256.Sum256([]byte(text))
	return &Document{
		Path:     path,
		Format:   format,
		Text:     text,
		Hash:     hex.EncodeToString(hash[:]),
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func readText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func(ctx context.Context, path string) (*Document, error)

// Load implements Loader
func (f LoaderFunc) Load(ctx context.Context, path string) (*Document, error) {
	return f(ctx, path)
}

// TextDocument wraps already-extracted text as a Document
func TextDocument(path, text string) *Document {
	return newDocument(path, FormatText, CleanText(text))
}
