package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-craft/schemas"
)

func TestResumeSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(schemas.Resume), &v))

	_, hasSchema := v["$schema"]
	_, hasDefs := v["definitions"]
	assert.True(t, hasSchema, "schema should declare $schema")
	assert.True(t, hasDefs, "schema should define its item shapes")
}

func TestResumeSchema_Compiles(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemas.Resume))
	require.NoError(t, err)
}

func TestResumeSchema_SectionTypes(t *testing.T) {
	var v struct {
		Definitions struct {
			Section struct {
				Properties struct {
					Type struct {
						Enum []string `json:"enum"`
					} `json:"type"`
				} `json:"properties"`
			} `json:"section"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(schemas.Resume), &v))
	assert.ElementsMatch(t,
		[]string{"summary", "experience", "education", "skills", "projects", "custom"},
		v.Definitions.Section.Properties.Type.Enum)
}
