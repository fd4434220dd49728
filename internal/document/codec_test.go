package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/types"
)

func decode(t *testing.T, payload string) Command {
	t.Helper()
	cmd, err := DecodeCommand([]byte(payload), fixture(), ids.NewSequence("new"))
	require.NoError(t, err)
	return cmd
}

func TestDecodeCommand_Simple(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Command
	}{
		{"personal info", `{"type":"updatePersonalInfo","field":"email","value":"a@b.c"}`, UpdatePersonalInfo{Field: "email", Value: "a@b.c"}},
		{"toggle", `{"type":"toggleSectionVisibility","sectionId":"edu"}`, ToggleSectionVisibility{SectionID: "edu"}},
		{"remove item", `{"type":"removeItem","sectionId":"skl","itemId":"s1"}`, RemoveItem{SectionID: "skl", ItemID: "s1"}},
		{"bool field", `{"type":"updateItemField","sectionId":"exp","itemId":"e1","field":"current","value":true}`, UpdateItemField{SectionID: "exp", ItemID: "e1", Field: "current", Value: true}},
		{"skills as text", `{"type":"updateItemField","sectionId":"skl","itemId":"s1","field":"items","value":"Kotlin, Java、Go"}`, UpdateItemField{SectionID: "skl", ItemID: "s1", Field: "items", Value: []string{"Kotlin", "Java", "Go"}}},
		{"technologies as text", `{"type":"updateItemField","sectionId":"prj","itemId":"x","field":"technologies","value":"Go, Redis"}`, UpdateItemField{SectionID: "prj", ItemID: "x", Field: "technologies", Value: []string{"Go", "Redis"}}},
		{"list as array", `{"type":"updateItemField","sectionId":"skl","itemId":"s1","field":"items","value":["Go"]}`, UpdateItemField{SectionID: "skl", ItemID: "s1", Field: "items", Value: []string{"Go"}}},
		{"move item", `{"type":"moveItem","sectionId":"skl","itemId":"s1","newIndex":0}`, MoveItem{SectionID: "skl", ItemID: "s1", NewIndex: 0}},
		{"rename", `{"type":"renameSection","sectionId":"exp","title":"Work"}`, RenameSection{SectionID: "exp", Title: "Work"}},
		{"theme", `{"type":"setTheme","theme":{"color":"#000000","fontScale":"sm"}}`, SetTheme{Theme: types.Theme{Color: "#000000", FontScale: types.FontScaleSmall}}},
		{"remove project", `{"type":"removeProject","sectionId":"exp","itemId":"e1","projectId":"p1"}`, RemoveProject{SectionID: "exp", ItemID: "e1", ProjectID: "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decode(t, tt.payload))
		})
	}
}

func TestDecodeCommand_AddItemAllocatesIDs(t *testing.T) {
	cmd := decode(t, `{"type":"addItem","sectionId":"exp","item":{"company":"C","projects":[{"name":"X"}]}}`)

	add, ok := cmd.(AddItem)
	require.True(t, ok)
	item, ok := add.Item.(types.ExperienceItem)
	require.True(t, ok)
	assert.Equal(t, "new-1", item.ID)
	require.Len(t, item.Projects, 1)
	assert.Equal(t, "new-2", item.Projects[0].ID)

	next, applied, err := Apply(fixture(), cmd)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, section(t, next, "exp").Content.(types.ExperienceList), 3)
}

func TestDecodeCommand_AddItemKeepsCallerID(t *testing.T) {
	cmd := decode(t, `{"type":"addItem","sectionId":"skl","item":{"id":"mine","category":"Cloud","items":["GCP"]}}`)
	assert.Equal(t, AddItem{SectionID: "skl", Item: types.SkillItem{ID: "mine", Category: "Cloud", Items: []string{"GCP"}}}, cmd)
}

func TestDecodeCommand_AddProject(t *testing.T) {
	cmd := decode(t, `{"type":"addProject","sectionId":"exp","itemId":"e1","project":{"name":"X"}}`)
	assert.Equal(t, AddProject{SectionID: "exp", ItemID: "e1", Project: types.WorkProject{ID: "new-1", Name: "X"}}, cmd)
}

func TestDecodeCommand_ReplaceContentUsesSectionType(t *testing.T) {
	cmd := decode(t, `{"type":"replaceSectionContent","sectionId":"sum","content":"New summary"}`)
	assert.Equal(t, ReplaceSectionContent{SectionID: "sum", Content: types.Summary("New summary")}, cmd)

	cmd = decode(t, `{"type":"replaceSectionContent","sectionId":"edu","content":[{"school":"MIT"}]}`)
	replace := cmd.(ReplaceSectionContent)
	edu := replace.Content.(types.EducationList)
	require.Len(t, edu, 1)
	assert.Equal(t, "new-1", edu[0].ID)
}

func TestDecodeCommand_UnknownSectionDecodesToNoOp(t *testing.T) {
	cmd := decode(t, `{"type":"addItem","sectionId":"gone","item":{"school":"MIT"}}`)

	_, applied, err := Apply(fixture(), cmd)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDecodeCommand_AddSection(t *testing.T) {
	cmd := decode(t, `{"type":"addSection","section":{"type":"custom","title":"Awards","isVisible":true,"content":"Best paper 2021"}}`)
	assert.Equal(t, AddSection{Section: types.Section{ID: "new-1", Type: types.SectionCustom, Title: "Awards", IsVisible: true, Content: types.CustomText("Best paper 2021")}}, cmd)
}

func TestDecodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{`},
		{"missing type", `{}`},
		{"unknown type", `{"type":"undo"}`},
		{"missing value", `{"type":"updatePersonalInfo","field":"email"}`},
		{"non string value", `{"type":"updatePersonalInfo","field":"email","value":3}`},
		{"missing index", `{"type":"moveItem","sectionId":"skl","itemId":"s1"}`},
		{"missing theme", `{"type":"setTheme"}`},
		{"missing title", `{"type":"renameSection","sectionId":"exp"}`},
		{"item into summary", `{"type":"addItem","sectionId":"sum","item":{"id":"x"}}`},
		{"missing item", `{"type":"addItem","sectionId":"skl"}`},
		{"mixed list", `{"type":"updateItemField","sectionId":"skl","itemId":"s1","field":"items","value":["a",1]}`},
		{"bad section type", `{"type":"addSection","section":{"type":"awards"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand([]byte(tt.payload), fixture(), ids.NewSequence("x"))
			require.Error(t, err)
			assert.IsType(t, &DecodeError{}, err)
		})
	}
}
