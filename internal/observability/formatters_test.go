package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-craft/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{FullName: "Alex Chen", Title: "Engineer"},
		Theme:        types.Theme{Color: "#1f2937", FontScale: "md"},
		Sections: []types.Section{
			{ID: "summary", Type: types.SectionSummary, Title: "Summary", IsVisible: true, Content: types.Summary("Builds apps")},
			{ID: "exp", Type: types.SectionExperience, Title: "Experience", IsVisible: true, Content: types.ExperienceList{
				{ID: "e1", Company: "Acme", Role: "Lead", Current: true, Projects: []types.WorkProject{{ID: "p1"}}},
			}},
			{ID: "skills", Type: types.SectionSkills, Title: "Skills", IsVisible: false, Content: types.SkillList{
				{ID: "s1", Category: "Languages", Items: []string{"Go", "Kotlin"}},
			}},
			{ID: "projects", Type: types.SectionProjects, Title: "Projects", IsVisible: true, Content: types.ProjectList{
				{ID: "r1", Name: "cli", Technologies: []string{"Go", "Cobra"}},
			}},
			{ID: "edu", Type: types.SectionEducation, Title: "Education", IsVisible: true, Content: types.EducationList{}},
		},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "RESUME DOCUMENT")
	assert.Contains(t, output, "Alex Chen")
	assert.Contains(t, output, "#1f2937 / md")
	assert.Contains(t, output, "● Summary (summary)")
	assert.Contains(t, output, "11 characters")
	assert.Contains(t, output, "• Lead, Acme (current) [1 projects]")
	assert.Contains(t, output, "○ Skills (skills)")
	assert.Contains(t, output, "Languages: Go, Kotlin")
	assert.Contains(t, output, "• cli (Go, Cobra)")
	assert.Contains(t, output, "(empty)")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDocument_LimitsItems(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := make(types.SkillList, 8)
	for i := range skills {
		skills[i] = types.SkillItem{ID: string(rune('a' + i)), Category: "Group"}
	}
	p.PrintDocument(&types.ResumeData{Sections: []types.Section{
		{ID: "skills", Type: types.SectionSkills, Title: "Skills", IsVisible: true, Content: skills},
	}})

	output := buf.String()
	assert.Equal(t, 5, strings.Count(output, "• Group"))
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintEnhancement(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEnhancement("experience description", "built things", "Built and shipped the payments platform used by millions of customers worldwide")
	output := buf.String()

	assert.Contains(t, output, "POLISHED EXPERIENCE DESCRIPTION")
	assert.Contains(t, output, "built things")
	assert.Contains(t, output, "Built and shipped")
	assert.NotContains(t, output, "(unchanged)")
}

func TestPrintEnhancement_Unchanged(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEnhancement("summary", "same text", "same text")

	assert.Contains(t, buf.String(), "(unchanged)")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9)
	assert.Equal(t, "  one two\n  three\n  four", got)
}
