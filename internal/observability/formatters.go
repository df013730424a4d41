// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes at most limit items as bullets with an overflow line
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintResume outputs a summary of the structured resume
func (p *Printer) PrintResume(resume *types.StructuredResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	if resume.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Name))
	}
	if resume.Education != "" {
		sb.WriteString(fmt.Sprintf("Education: %s\n", strings.ReplaceAll(resume.Education, "\n", " ")))
	}
	sb.WriteString(fmt.Sprintf("Skills:   %d explicit\n", len(resume.SkillsExplicit)))
	sb.WriteString("\n")

	if len(resume.Experiences) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(resume.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := resume.Experiences[i]
			line := strings.TrimSpace(strings.Join([]string{e.Title, e.Company}, " @ "))
			if e.Period != "" {
				line += " (" + e.Period + ")"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", strings.Trim(line, " @")))
		}
		if len(resume.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experiences)-maxItemsToShow))
		}
	}

	if len(resume.Projects) > 0 {
		sb.WriteString("Projects:\n")
		names := make([]string, 0, len(resume.Projects))
		for _, proj := range resume.Projects {
			names = append(names, proj.Name)
		}
		writeList(&sb, names, 3)
	}

	p.printBox("STRUCTURED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillAnalysis outputs the explicit and implicit skill sets
func (p *Printer) PrintSkillAnalysis(analysis *types.SkillAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Explicit (%d):\n", len(analysis.ExplicitSkills)))
	writeList(&sb, analysis.ExplicitSkills, maxItemsToShow*2)
	sb.WriteString(fmt.Sprintf("Implicit (%d):\n", len(analysis.ImplicitSkills)))
	writeList(&sb, analysis.ImplicitSkills, maxItemsToShow)
	if analysis.Notes != "" {
		sb.WriteString("\n" + analysis.Notes + "\n")
	}

	p.printBox("SKILL ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMarketRequirements outputs the market skills for the target role
func (p *Printer) PrintMarketRequirements(req *types.MarketRequirements) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", req.Role))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", req.Source))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(req.Skills)))
	writeList(&sb, req.Skills, maxItemsToShow*2)

	p.printBox("MARKET REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs advisory report issues. Nothing is printed when there are none.
func (p *Printer) PrintIssues(issues []string) {
	if len(issues) == 0 {
		return
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
	}
	p.printBox(fmt.Sprintf("REPORT ISSUES (%d)", len(issues)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact dispatches on the artifact type. Unknown types are ignored.
func (p *Printer) PrintArtifact(content any) {
	switch v := content.(type) {
	case *types.StructuredResume:
		p.PrintResume(v)
	case *types.SkillAnalysis:
		p.PrintSkillAnalysis(v)
	case *types.MarketRequirements:
		p.PrintMarketRequirements(v)
	}
}
