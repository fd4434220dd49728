package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceItem_WithField(t *testing.T) {
	orig := ExperienceItem{ID: "e1", Company: "Acme", Projects: []WorkProject{{ID: "p1"}}}

	next, err := orig.WithField("company", "Globex")
	require.NoError(t, err)
	assert.Equal(t, "Globex", next.Company)
	assert.Equal(t, "Acme", orig.Company)
	assert.Equal(t, orig.Projects, next.Projects)

	next, err = orig.WithField(FieldCurrent, true)
	require.NoError(t, err)
	assert.True(t, next.Current)
}

func TestWithField_Errors(t *testing.T) {
	var unknown *UnknownFieldError
	var typeErr *FieldTypeError

	_, err := ExperienceItem{}.WithField("projects", "x")
	assert.ErrorAs(t, err, &unknown)

	_, err = ExperienceItem{}.WithField(FieldCurrent, "yes")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "bool", typeErr.Want)

	_, err = EducationItem{}.WithField("school", 42)
	assert.ErrorAs(t, err, &typeErr)

	_, err = ProjectItem{}.WithField("technologies", "Go, Kotlin")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "[]string", typeErr.Want)

	_, err = SkillItem{}.WithField("level", "expert")
	assert.ErrorAs(t, err, &unknown)

	_, err = WorkProject{}.WithField("technologies", []string{})
	assert.ErrorAs(t, err, &unknown)

	_, err = PersonalInfo{}.WithField("age", "30")
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `PersonalInfo has no editable field "age"`, err.Error())
}

func TestSkillItem_WithField_CopiesList(t *testing.T) {
	list := []string{"Go", "SQL"}

	next, err := SkillItem{ID: "s1"}.WithField("items", list)
	require.NoError(t, err)
	list[0] = "Changed"

	assert.Equal(t, []string{"Go", "SQL"}, next.Items)
}

func TestWorkProject_WithField(t *testing.T) {
	next, err := WorkProject{ID: "p1"}.WithField("highlights", "Cut crash rate by 40%")
	require.NoError(t, err)
	assert.Equal(t, "Cut crash rate by 40%", next.Highlights)
}

func TestPersonalInfo_WithField(t *testing.T) {
	next, err := PersonalInfo{FullName: "Alex"}.WithField(FieldLinkedIn, "in/alex")
	require.NoError(t, err)
	assert.Equal(t, PersonalInfo{FullName: "Alex", LinkedIn: "in/alex"}, next)
}

func TestClone_NeverNil(t *testing.T) {
	assert.NotNil(t, ExperienceItem{}.Clone().Projects)
	assert.NotNil(t, ProjectItem{}.Clone().Technologies)
	assert.NotNil(t, SkillItem{}.Clone().Items)
}
