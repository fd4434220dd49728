package seed

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/schemas"
	"github.com/jonathan/resume-craft/internal/types"
)

func TestLoadFile_YAMLIsNormalized(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "minimal.yaml"), ids.NewSequence("n"))
	require.NoError(t, err)

	assert.Equal(t, "Sam Rivera", doc.PersonalInfo.FullName)
	assert.Equal(t, types.DefaultTheme(), doc.Theme)
	require.Len(t, doc.Sections, 3)

	sum := doc.Sections[0]
	assert.Equal(t, "n-1", sum.ID)
	assert.Equal(t, "Summary", sum.Title, "empty title falls back to the default")
	assert.Equal(t, types.Summary("Backend engineer focused on Go services."), sum.Content)
	assert.True(t, sum.IsVisible, "omitted isVisible means visible")

	skills := doc.Sections[1].Content.(types.SkillList)
	require.Len(t, skills, 1)
	assert.NotEmpty(t, skills[0].ID)
	assert.Equal(t, []string{"Go", "Python"}, skills[0].Items)
	assert.Equal(t, "Toolbox", doc.Sections[1].Title)

	exp := doc.Sections[2].Content.(types.ExperienceList)
	require.Len(t, exp, 1)
	assert.NotEmpty(t, exp[0].ID)
	require.Len(t, exp[0].Projects, 1)
	assert.NotEmpty(t, exp[0].Projects[0].ID)
	assert.NotEqual(t, exp[0].ID, exp[0].Projects[0].ID)

	assert.NoError(t, document.Validate(doc))
}

func TestLoad_YAMLKeepsScalarText(t *testing.T) {
	content := `
personalInfo:
  fullName: Sam Rivera
  phone: 5551234
sections:
  - type: experience
    content:
      - company: Acme
        startDate: 2020.10
        endDate: 2022.12
        current: true
  - type: skills
    isVisible: false
    content:
      - category: Years
        items: [2023, "Go", 1.5]
`
	doc, err := Load([]byte(content), FormatYAML, ids.NewSequence("n"))
	require.NoError(t, err)

	assert.Equal(t, "5551234", doc.PersonalInfo.Phone)

	exp := doc.Sections[0].Content.(types.ExperienceList)
	require.Len(t, exp, 1)
	assert.Equal(t, "2020.10", exp[0].StartDate)
	assert.Equal(t, "2022.12", exp[0].EndDate)
	assert.True(t, exp[0].Current)
	assert.True(t, doc.Sections[0].IsVisible)

	assert.False(t, doc.Sections[1].IsVisible)
	skills := doc.Sections[1].Content.(types.SkillList)
	assert.Equal(t, []string{"2023", "Go", "1.5"}, skills[0].Items)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "nope.json"), nil)
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("duplicate section ids", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "duplicate_ids.json"), nil)
		var normErr *NormalizationError
		require.True(t, errors.As(err, &normErr))
		var verr *document.ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("content shape", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "bad_shape.json"), nil)
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		var schemaErr *schemas.ValidationError
		assert.True(t, errors.As(err, &schemaErr))
	})
}

func TestLoad_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"malformed json", `{"sections": [`, FormatJSON},
		{"malformed yaml", "sections: [unclosed", FormatYAML},
		{"unknown format", `{}`, Format("toml")},
		{"no sections", `{}`, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.content), tt.format, nil)
			require.Error(t, err)
			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestNormalize_KeepsExistingIDsAndOrder(t *testing.T) {
	in := types.ResumeData{Sections: []types.Section{
		{ID: "b", Type: types.SectionProjects, Content: types.ProjectList{{ID: "x", Technologies: []string{" Go ", "Redis"}}}},
		{ID: "a", Type: types.SectionEducation},
	}}

	out, err := Normalize(in, ids.NewSequence("n"))
	require.NoError(t, err)

	assert.Equal(t, "b", out.Sections[0].ID)
	assert.Equal(t, "a", out.Sections[1].ID)
	assert.Equal(t, []string{"Go", "Redis"}, out.Sections[0].Content.(types.ProjectList)[0].Technologies)
	assert.Equal(t, types.EducationList{}, out.Sections[1].Content)
	assert.Equal(t, " Go ", in.Sections[0].Content.(types.ProjectList)[0].Technologies[0], "input is not modified")
}

func TestNormalize_RejectsUnknownType(t *testing.T) {
	_, err := Normalize(types.ResumeData{Sections: []types.Section{{ID: "x", Type: "awards"}}}, nil)
	assert.IsType(t, &NormalizationError{}, err)
}

func TestNormalize_RejectsDuplicateItemIDs(t *testing.T) {
	in := types.ResumeData{Sections: []types.Section{
		{ID: "s", Type: types.SectionSkills, Content: types.SkillList{{ID: "k"}, {ID: "k"}}},
	}}
	_, err := Normalize(in, nil)
	assert.IsType(t, &NormalizationError{}, err)
}

func TestTemplate(t *testing.T) {
	doc, err := Template()
	require.NoError(t, err)
	require.NoError(t, document.Validate(doc))

	require.Len(t, doc.Sections, 5)
	assert.Equal(t, []types.SectionType{
		types.SectionSummary, types.SectionExperience, types.SectionEducation, types.SectionSkills, types.SectionProjects,
	}, []types.SectionType{doc.Sections[0].Type, doc.Sections[1].Type, doc.Sections[2].Type, doc.Sections[3].Type, doc.Sections[4].Type})
	assert.False(t, doc.Sections[4].IsVisible, "projects section starts hidden")

	exp := doc.Sections[1].Content.(types.ExperienceList)
	require.Len(t, exp, 2)
	assert.True(t, exp[0].Current)
	assert.Len(t, exp[0].Projects, 2)
	assert.Len(t, exp[1].Projects, 1)

	// callers get independent copies
	exp[0].Company = "changed"
	again, err := Template()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Sections[1].Content.(types.ExperienceList)[0].Company)
}

func TestEmpty(t *testing.T) {
	doc := Empty(ids.NewSequence("e"))
	require.NoError(t, document.Validate(doc))
	require.Len(t, doc.Sections, 5)
	for _, s := range doc.Sections {
		assert.True(t, s.IsVisible)
		assert.Equal(t, 0, s.Content.Len())
		assert.Equal(t, DefaultTitles[s.Type], s.Title)
	}
	assert.Equal(t, "e-1", doc.Sections[0].ID)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("resume.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("RESUME.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("resume.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("resume"))
}
