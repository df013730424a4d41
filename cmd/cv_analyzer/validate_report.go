package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-analyzer/internal/observability"
	"github.com/jonathan/cv-analyzer/internal/reporting"
	"github.com/jonathan/cv-analyzer/internal/types"
)

var validateReportCmd = &cobra.Command{
	Use:   "validate-report <file>",
	Short: "Check a markdown report for missing or empty sections",
	Long:  "Checks a rendered report for the expected section headings, a single final-notes section and empty sections. Issues are advisory; the command only fails when the file cannot be read.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateReport,
}

var validateReportLanguage string

func init() {
	validateReportCmd.Flags().StringVarP(&validateReportLanguage, "language", "l", "english", "Report language: english or indonesia")
	rootCmd.AddCommand(validateReportCmd)
}

func runValidateReport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("report file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	issues := reporting.Validate(string(content), types.ParseLanguage(validateReportLanguage))
	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(out, "✓ %s: no issues found\n", path)
		return nil
	}
	observability.NewPrinter(out).PrintIssues(issues)
	return nil
}
