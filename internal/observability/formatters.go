// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/resume"
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintDocument outputs a human-readable outline of a resume.
func (p *Printer) PrintDocument(doc *resume.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Contact.Name))
	if doc.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Contact.Email))
	}
	if doc.Contact.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", doc.Contact.Location))
	}
	sb.WriteString("\n")

	for _, key := range doc.SectionOrder {
		switch key {
		case resume.SectionSummary:
			if doc.Summary == "" {
				sb.WriteString("Summary: (empty)\n")
			} else {
				sb.WriteString(fmt.Sprintf("Summary: %s\n", doc.Summary))
			}
		case resume.SectionExperience:
			sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
			for i, item := range doc.Experience {
				if i == maxItemsToShow {
					sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
					break
				}
				sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n", item.Title, item.Company, len(item.Description)))
			}
		case resume.SectionEducation:
			sb.WriteString(fmt.Sprintf("Education (%d):\n", len(doc.Education)))
			for i, item := range doc.Education {
				if i == maxItemsToShow {
					sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-maxItemsToShow))
					break
				}
				sb.WriteString(fmt.Sprintf("  • %s, %s\n", item.Degree, item.Institution))
			}
		case resume.SectionProjects:
			sb.WriteString(fmt.Sprintf("Projects (%d):\n", len(doc.Projects)))
			for i, item := range doc.Projects {
				if i == maxItemsToShow {
					sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Projects)-maxItemsToShow))
					break
				}
				sb.WriteString(fmt.Sprintf("  • %s\n", item.Name))
			}
		case resume.SectionSkills:
			sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(doc.Skills)))
			for i, item := range doc.Skills {
				if i == maxItemsToShow {
					sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Skills)-maxItemsToShow))
					break
				}
				sb.WriteString(fmt.Sprintf("  • %s: %s\n", item.Category, item.Items))
			}
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportMetadata outputs how an upload was read.
func (p *Printer) PrintImportMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", meta.Filename))
	sb.WriteString(fmt.Sprintf("Format: %s (%d bytes)\n", meta.Kind.Label(), meta.Size))
	if meta.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:  %d\n", meta.Pages))
	}
	sb.WriteString(fmt.Sprintf("Route:  %s\n", meta.Route))
	if meta.Model != "" {
		sb.WriteString(fmt.Sprintf("Model:  %s\n", meta.Model))
	}
	sb.WriteString(fmt.Sprintf("SHA256: %s", meta.Hash))

	p.printBox("IMPORT", sb.String())
}

// PrintSummary outputs a generated summary, wrapped to the box width.
func (p *Printer) PrintSummary(text string) {
	if text == "" {
		return
	}
	p.printBox("GENERATED SUMMARY", wrap(text, boxWidth-4))
}

// PrintExport outputs the result of an export.
func (p *Printer) PrintExport(res *export.Result, path string) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:    %s\n", res.Filename))
	sb.WriteString(fmt.Sprintf("Size:    %d bytes\n", len(res.PDF)))
	if path != "" {
		sb.WriteString(fmt.Sprintf("Written: %s\n", path))
	}
	if res.Location != "" {
		sb.WriteString(fmt.Sprintf("Archive: %s\n", res.Location))
	}

	p.printBox("PDF EXPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes at word boundaries.
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
