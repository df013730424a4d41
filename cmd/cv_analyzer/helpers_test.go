package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the cv_analyzer binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "cv_analyzer"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/cv_analyzer ./cmd/cv_analyzer'", binaryPath)
	}

	return binaryPath
}
