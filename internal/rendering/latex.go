// Package rendering turns a résumé projection into printable output: an A4 HTML page
// or LaTeX source.
package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-craft/internal/projection"
)

// TemplateData represents the data structure passed to the LaTeX template.
// Every string is already escaped for LaTeX.
type TemplateData struct {
	Name     string
	Title    string
	Contacts string
	Accent   string
	Sections []SectionData
}

// SectionData is one visible section
type SectionData struct {
	Title   string
	Text    string
	Entries []EntryData
}

// EntryData is one item of a list section
type EntryData struct {
	Heading string
	Sub     string
	Dates   string
	Body    string
	Bullets []string
}

// RenderLaTeX renders a projection with the built-in LaTeX template
func RenderLaTeX(doc projection.Document) (string, error) {
	content, err := templateFS.ReadFile("templates/resume.tex.tmpl")
	if err != nil {
		return "", &TemplateError{Message: "failed to read built-in LaTeX template", Cause: err}
	}
	tmpl, err := newLaTeXTemplate(string(content))
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

// RenderLaTeXWithTemplate renders a projection with a LaTeX template read from disk
func RenderLaTeXWithTemplate(doc projection.Document, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

func executeLaTeX(tmpl *template.Template, doc projection.Document) (string, error) {
	data := buildTemplateData(doc)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newLaTeXTemplate(string(content))
}

func newLaTeXTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// buildTemplateData flattens the projection into escaped strings
func buildTemplateData(doc projection.Document) *TemplateData {
	contacts := make([]string, 0, len(doc.Header.Contacts))
	for _, c := range doc.Header.Contacts {
		contacts = append(contacts, EscapeLaTeX(c.Value))
	}

	data := &TemplateData{
		Name:     EscapeLaTeX(doc.Header.FullName),
		Title:    EscapeLaTeX(doc.Header.Title),
		Contacts: strings.Join(contacts, ` \textbar{} `),
		Accent:   strings.ToUpper(strings.TrimPrefix(expandHex(accentColor(doc.Theme)), "#")),
		Sections: make([]SectionData, 0, len(doc.Sections)),
	}

	for _, s := range doc.Sections {
		data.Sections = append(data.Sections, buildSection(s, doc.Labels))
	}
	return data
}

func buildSection(s projection.Section, labels projection.Labels) SectionData {
	out := SectionData{
		Title: EscapeLaTeX(s.Title),
		Text:  EscapeLaTeXParagraphs(s.Text),
	}

	for _, e := range s.Experience {
		bullets := make([]string, 0, len(e.Projects))
		for _, p := range e.Projects {
			bullets = append(bullets, workProjectLine(p, labels))
		}
		out.Entries = append(out.Entries, EntryData{
			Heading: EscapeLaTeX(e.Company),
			Sub:     EscapeLaTeX(e.Role),
			Dates:   formatDates(e.Dates),
			Body:    EscapeLaTeXParagraphs(e.Description),
			Bullets: bullets,
		})
	}
	for _, e := range s.Education {
		out.Entries = append(out.Entries, EntryData{
			Heading: EscapeLaTeX(e.School),
			Sub:     EscapeLaTeX(e.Degree),
			Dates:   formatDates(e.Dates),
			Body:    EscapeLaTeXParagraphs(e.Description),
		})
	}
	for _, p := range s.Projects {
		body := EscapeLaTeXParagraphs(p.Description)
		if p.TechnologiesText != "" {
			body = strings.TrimSpace(body + `\\ \small ` + EscapeLaTeX(p.TechnologiesText))
		}
		out.Entries = append(out.Entries, EntryData{
			Heading: EscapeLaTeX(p.Name),
			Sub:     EscapeLaTeX(p.Link),
			Body:    body,
		})
	}
	for _, g := range s.Skills {
		out.Entries = append(out.Entries, EntryData{
			Heading: EscapeLaTeX(g.Category),
			Body:    EscapeLaTeX(g.Text),
		})
	}
	return out
}

func workProjectLine(p projection.WorkProject, labels projection.Labels) string {
	parts := []string{`\textbf{` + EscapeLaTeX(p.Name) + `}`}
	if dates := formatDates(p.Dates); dates != "" {
		parts[0] += " (" + dates + ")"
	}
	if p.Role != "" {
		parts = append(parts, EscapeLaTeX(labels.Role)+": "+EscapeLaTeX(p.Role))
	}
	if p.Content != "" {
		parts = append(parts, EscapeLaTeX(labels.Content)+": "+EscapeLaTeX(p.Content))
	}
	if p.Highlights != "" {
		parts = append(parts, EscapeLaTeX(labels.Highlights)+": "+EscapeLaTeX(p.Highlights))
	}
	return strings.Join(parts, `. `)
}

func formatDates(d projection.DateRange) string {
	switch {
	case d.Empty():
		return ""
	case d.End == "":
		return EscapeLaTeX(d.Start)
	case d.Start == "":
		return EscapeLaTeX(d.End)
	default:
		return EscapeLaTeX(d.Start) + " -- " + EscapeLaTeX(d.End)
	}
}

// expandHex turns #abc into #aabbcc
func expandHex(color string) string {
	if len(color) != 4 {
		return color
	}
	return string([]byte{'#', color[1], color[1], color[2], color[2], color[3], color[3]})
}
