package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume_Valid(t *testing.T) {
	doc := `{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com"},
		"sections": [
			{"id": "s1", "type": "summary", "title": "Summary", "isVisible": true, "content": "Engineer"},
			{"id": "s2", "type": "experience", "title": "Experience", "isVisible": true, "content": [
				{"id": "e1", "company": "A", "current": true, "projects": [{"id": "p1", "name": "X"}]}
			]},
			{"id": "s3", "type": "skills", "title": "Skills", "isVisible": true, "content": [
				{"id": "k1", "category": "Languages", "items": ["Go"]}
			]},
			{"type": "projects", "content": null}
		],
		"theme": {"color": "#2563eb", "fontScale": "md"}
	}`

	assert.NoError(t, ValidateResume([]byte(doc)))
}

func TestValidateResume_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing sections", `{"personalInfo": {}}`},
		{"unknown section type", `{"sections": [{"type": "awards"}]}`},
		{"text content for list section", `{"sections": [{"type": "skills", "content": "Go, Java"}]}`},
		{"list content for summary", `{"sections": [{"type": "summary", "content": []}]}`},
		{"unknown item field", `{"sections": [{"type": "education", "content": [{"school": "MIT", "gpa": 4}]}]}`},
		{"non-boolean current", `{"sections": [{"type": "experience", "content": [{"current": "yes"}]}]}`},
		{"bad font scale", `{"sections": [], "theme": {"fontScale": "xl"}}`},
		{"unknown personal info field", `{"sections": [], "personalInfo": {"age": "30"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
			assert.Contains(t, validationErr.Error(), "validation failed")
		})
	}
}

func TestValidateResume_MalformedJSON(t *testing.T) {
	err := ValidateResume([]byte(`{"sections": [`))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.False(t, ok)
}
