package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-craft/internal/projection"
	"github.com/jonathan/resume-craft/internal/types"
)

func sampleView() projection.Document {
	doc := types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane O'Doe",
			Title:    "R&D Engineer",
			Email:    "jane_doe@example.com",
			Phone:    "+1 555 0100",
		},
		Sections: []types.Section{
			{ID: "sum", Type: types.SectionSummary, Title: "Summary", IsVisible: true, Content: types.Summary("Ships 100% of the time.\n\nLoves Go.")},
			{ID: "exp", Type: types.SectionExperience, Title: "Experience", IsVisible: true, Content: types.ExperienceList{
				{ID: "e1", Company: "Acme & Co", Role: "Lead", StartDate: "2020.01", EndDate: "2022.12", Current: true, Description: "Owned billing.", Projects: []types.WorkProject{
					{ID: "p1", Name: "Ledger", Role: "Owner", StartDate: "2021.01", EndDate: "2021.06", Content: "Rewrote ledger", Highlights: "p99 -40%"},
				}},
			}},
			{ID: "edu", Type: types.SectionEducation, Title: "Education", IsVisible: true, Content: types.EducationList{
				{ID: "d1", School: "MIT", Degree: "BSc", StartDate: "2014", EndDate: "2018"},
			}},
			{ID: "skl", Type: types.SectionSkills, Title: "Skills", IsVisible: true, Content: types.SkillList{
				{ID: "s1", Category: "Languages", Items: []string{"Kotlin", "Java", "Go"}},
			}},
			{ID: "prj", Type: types.SectionProjects, Title: "Projects", IsVisible: true, Content: types.ProjectList{
				{ID: "r1", Name: "resume-craft", Link: "https://example.com/rc", Description: "Editor", Technologies: []string{"Go", "Cobra"}},
			}},
			{ID: "hid", Type: types.SectionCustom, Title: "Secret", IsVisible: false, Content: types.CustomText("hidden text")},
		},
		Theme: types.Theme{Color: "#abc", FontScale: types.FontScaleLarge},
	}
	return projection.Project(doc, projection.Options{})
}

func TestParseTemplate_ValidTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "test.tex")
	templateContent := `\documentclass{article}
\begin{document}
Name: {{.Name}}
\end{document}`
	err := os.WriteFile(templatePath, []byte(templateContent), 0644)
	require.NoError(t, err)

	tmpl, err := parseTemplate(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_InvalidPath(t *testing.T) {
	_, err := parseTemplate("/nonexistent/template.tex")
	assert.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestParseTemplate_InvalidTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "invalid.tex")
	templateContent := `\documentclass{article}
\begin{document}
{{.InvalidSyntax{{}}
\end{document}`
	err := os.WriteFile(templatePath, []byte(templateContent), 0644)
	require.NoError(t, err)

	_, err = parseTemplate(templatePath)
	assert.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestBuildTemplateData_Escapes(t *testing.T) {
	data := buildTemplateData(sampleView())

	assert.Equal(t, "Jane O'Doe", data.Name)
	assert.Equal(t, `R\&D Engineer`, data.Title)
	assert.Equal(t, `jane\_doe@example.com \textbar{} +1 555 0100`, data.Contacts)
	assert.Equal(t, "AABBCC", data.Accent)
	require.Len(t, data.Sections, 5, "hidden section is not rendered")

	exp := data.Sections[1].Entries[0]
	assert.Equal(t, `Acme \& Co`, exp.Heading)
	assert.Equal(t, "2020.01 -- Present", exp.Dates)
	require.Len(t, exp.Bullets, 1)
	assert.Equal(t, `\textbf{Ledger} (2021.01 -- 2021.06). Role: Owner. Responsibilities: Rewrote ledger. Highlights: p99 -40\%`, exp.Bullets[0])

	assert.Equal(t, `Ships 100\% of the time.`+"\n\n"+`Loves Go.`, data.Sections[0].Text)
	assert.Equal(t, "Kotlin、Java、Go", data.Sections[3].Entries[0].Body)
}

func TestFormatDates(t *testing.T) {
	tests := []struct {
		name     string
		input    projection.DateRange
		expected string
	}{
		{"both", projection.DateRange{Start: "2020", End: "2021"}, "2020 -- 2021"},
		{"start only", projection.DateRange{Start: "2020"}, "2020"},
		{"end only", projection.DateRange{End: "2021"}, "2021"},
		{"empty", projection.DateRange{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDates(tt.input))
		})
	}
}

func TestRenderLaTeX_BuiltInTemplate(t *testing.T) {
	out, err := RenderLaTeX(sampleView())
	require.NoError(t, err)

	assert.Contains(t, out, `\documentclass`)
	assert.Contains(t, out, `\definecolor{accent}{HTML}{AABBCC}`)
	assert.Contains(t, out, `\section*{Experience}`)
	assert.Contains(t, out, `\textbf{Acme \& Co} \hfill 2020.01 -- Present`)
	assert.Contains(t, out, `\item \textbf{Ledger}`)
	assert.NotContains(t, out, "Secret")
	assert.NotContains(t, out, "hidden text")
}

func TestRenderLaTeXWithTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "mini.tex")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{.Name}}|{{range .Sections}}{{.Title}};{{end}}`), 0644))

	out, err := RenderLaTeXWithTemplate(sampleView(), templatePath)
	require.NoError(t, err)
	assert.Equal(t, "Jane O'Doe|Summary;Experience;Education;Skills;Projects;", out)
}

func TestRender_Formats(t *testing.T) {
	view := sampleView()

	for _, f := range []Format{FormatHTML, FormatLaTeX, FormatJSON} {
		out, err := Render(view, f)
		require.NoError(t, err, "format %s", f)
		assert.NotEmpty(t, out)
	}

	_, err := Render(view, Format("docx"))
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
