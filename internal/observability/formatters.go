// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-board/internal/jobimport"
	"github.com/jonathan/job-board/internal/schema"
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

// PrintParsedResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintParsedResume(parsed *schema.ParsedResume) {
	if parsed == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(parsed.Name())))
	sb.WriteString(fmt.Sprintf("Variant:    %s\n", parsed.Variant))
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", parsed.TotalExperienceYears()))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", orDash(parsed.EducationLevel())))
	sb.WriteString("\n")
	sb.WriteString(formatList("Skills", parsed.Skills()))

	p.printBox("Parsed Resume", strings.TrimRight(sb.String(), "\n"))
}

// PrintJobDraft outputs a human-readable summary of an imported job draft.
func (p *Printer) PrintJobDraft(draft *jobimport.Draft) {
	if draft == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(draft.Title)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(draft.Company)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(draft.Location)))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", orDash(draft.JobType)))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", orDash(draft.WorkMode)))
	sb.WriteString(fmt.Sprintf("Level:    %s\n", orDash(draft.ExperienceLevel)))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", orDash(draft.Platform)))
	sb.WriteString("\n")
	sb.WriteString(formatList("Required skills", draft.RequiredSkills))
	sb.WriteString(formatList("Nice to have", draft.NiceToHaveSkills))

	p.printBox("Imported Job Posting", strings.TrimRight(sb.String(), "\n"))
}

// formatList renders a labeled list, truncated to maxItemsToShow entries.
func formatList(label string, items []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	shown := items
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for _, item := range shown {
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}

	return sb.String()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
