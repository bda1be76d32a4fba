// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"resume-studio/internal/types"
	"resume-studio/internal/validate"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of a resume document.
func (p *Printer) PrintResume(resume *types.ResumeData) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Basics.FullName))
	if resume.Basics.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", resume.Basics.Title))
	}
	if resume.Basics.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.Basics.Email))
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", resume.Metadata.Template))
	sb.WriteString("\n")

	sb.WriteString("Sections:\n")
	count := min(len(resume.Sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		section := resume.Sections[i]
		marker := "•"
		if !section.Visible {
			marker = "·"
		}
		title := section.Title
		if section.TitleOverride != "" {
			title = section.TitleOverride
		}
		sb.WriteString(fmt.Sprintf("  %s %s (%d items)\n", marker, title, len(section.Items)))
	}
	if len(resume.Sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Sections)-maxItemsToShow))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs validation issues, or a clean bill of health.
func (p *Printer) PrintIssues(issues []validate.Issue) {
	var sb strings.Builder

	if len(issues) == 0 {
		sb.WriteString("No issues found")
	} else {
		sb.WriteString(fmt.Sprintf("Issues found: %d\n\n", len(issues)))
		count := min(len(issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", issues[i].Field, issues[i].Message))
		}
		if len(issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(issues)-maxItemsToShow))
		}
	}

	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the completeness score with a simple bar.
func (p *Printer) PrintScore(score int) {
	filled := score * 20 / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	content := fmt.Sprintf("Completeness: %3d/100\n[%s]", score, bar)
	p.printBox("SCORE", content)
}

// PrintSuggestions outputs improvement suggestions from the model.
func (p *Printer) PrintSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
