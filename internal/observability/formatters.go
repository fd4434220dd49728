// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-craft/internal/parsing"
	"github.com/jonathan/resume-craft/internal/types"
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

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs the header, theme and section outline of a résumé document.
func (p *Printer) PrintDocument(doc *types.ResumeData) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	info := doc.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:   %s\n", orDash(info.FullName)))
	sb.WriteString(fmt.Sprintf("Title:  %s\n", orDash(info.Title)))
	sb.WriteString(fmt.Sprintf("Theme:  %s / %s\n", orDash(doc.Theme.Color), orDash(string(doc.Theme.FontScale))))
	sb.WriteString("\n")

	for i, s := range doc.Sections {
		marker := "●"
		if !s.IsVisible {
			marker = "○"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", marker, s.Title, s.Type))
		for _, line := range sectionLines(s.Content) {
			sb.WriteString("    " + line + "\n")
		}
		if i < len(doc.Sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// sectionLines summarizes the content of one section, one line per entry
func sectionLines(c types.Content) []string {
	var lines []string
	switch v := c.(type) {
	case types.Summary:
		lines = append(lines, fmt.Sprintf("%d characters", len([]rune(string(v)))))
	case types.CustomText:
		lines = append(lines, fmt.Sprintf("%d characters", len([]rune(string(v)))))
	case types.ExperienceList:
		for _, e := range v {
			line := fmt.Sprintf("• %s, %s", e.Role, e.Company)
			if e.Current {
				line += " (current)"
			}
			if len(e.Projects) > 0 {
				line += fmt.Sprintf(" [%d projects]", len(e.Projects))
			}
			lines = append(lines, line)
		}
	case types.EducationList:
		for _, e := range v {
			lines = append(lines, fmt.Sprintf("• %s, %s", e.Degree, e.School))
		}
	case types.ProjectList:
		for _, pr := range v {
			line := "• " + pr.Name
			if len(pr.Technologies) > 0 {
				line += " (" + parsing.JoinList(pr.Technologies) + ")"
			}
			lines = append(lines, line)
		}
	case types.SkillList:
		for _, s := range v {
			lines = append(lines, fmt.Sprintf("• %s: %s", s.Category, parsing.JoinList(s.Items)))
		}
	}
	if len(lines) > maxItemsToShow {
		more := len(lines) - maxItemsToShow
		lines = append(lines[:maxItemsToShow:maxItemsToShow], fmt.Sprintf("... and %d more", more))
	}
	if len(lines) == 0 {
		lines = append(lines, "(empty)")
	}
	return lines
}

// PrintEnhancement outputs a before/after pair produced by the text enhancer.
func (p *Printer) PrintEnhancement(label, before, after string) {
	var sb strings.Builder
	sb.WriteString("Before:\n")
	sb.WriteString(wrap(before, boxWidth-6))
	sb.WriteString("\n\nAfter:\n")
	if after == before {
		sb.WriteString("  (unchanged)")
	} else {
		sb.WriteString(wrap(after, boxWidth-6))
	}
	p.printBox(strings.ToUpper("POLISHED "+label), sb.String())
}

// wrap breaks text into indented lines of at most width runes
func wrap(text string, width int) string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(text) {
		if line != "" && len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, "  "+line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
