package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/seed"
	"github.com/jonathan/resume-craft/internal/types"
)

// execute runs the CLI in-process and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// writeTemplateSeed writes the built-in template to a temp file and returns its path
func writeTemplateSeed(t *testing.T) string {
	t.Helper()
	out, err := execute(t, "template")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0644))
	return path
}

func TestTemplate_PrintsLoadableSeed(t *testing.T) {
	out, err := execute(t, "template")
	require.NoError(t, err)

	doc, err := seed.Load([]byte(out), seed.FormatJSON, ids.NewSequence("t"))
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", doc.PersonalInfo.FullName)
	assert.NotEmpty(t, doc.Sections)
}

func TestTemplate_Empty(t *testing.T) {
	out, err := execute(t, "template", "--empty")
	require.NoError(t, err)

	var doc types.ResumeData
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Empty(t, doc.PersonalInfo.FullName)
	for _, s := range doc.Sections {
		assert.Empty(t, types.Items(s.Content), "section %s", s.ID)
	}
}

func TestTemplate_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out, err := execute(t, "template", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestValidate(t *testing.T) {
	path := writeTemplateSeed(t)

	out, err := execute(t, "validate", "--seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "[experience, visible]")
	assert.Contains(t, out, "[projects, hidden]")
}

func TestValidate_Verbose(t *testing.T) {
	path := writeTemplateSeed(t)

	out, err := execute(t, "validate", "--seed", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "RESUME DOCUMENT")
	assert.Contains(t, out, "Alex Chen")
	assert.Contains(t, out, "○ ")
}

func TestValidate_RequiresSeed(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")
}

func TestValidate_RejectsInvalidSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"personalInfo": 42}`), 0644))

	_, err := execute(t, "validate", "--seed", path)
	require.Error(t, err)
	var loadErr *seed.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", "--seed", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRender_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "html", want: "<html"},
		{format: "latex", want: `\begin{document}`},
		{format: "tex", want: `\begin{document}`},
		{format: "json", want: `"sections"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "render", "--format", tt.format)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Alex Chen")
		})
	}
}

func TestRender_PresentLabel(t *testing.T) {
	out, err := execute(t, "render", "--format", "json", "--present-label", "Now")
	require.NoError(t, err)
	assert.Contains(t, out, "Now")
	assert.NotContains(t, out, `"Present"`)
}

func TestRender_HTMLLang(t *testing.T) {
	out, err := execute(t, "render", "--lang", "ja")
	require.NoError(t, err)
	assert.Contains(t, out, `lang="ja"`)
}

func TestRender_FromSeedToFile(t *testing.T) {
	seedPath := writeTemplateSeed(t)
	outPath := filepath.Join(t.TempDir(), "resume.html")

	out, err := execute(t, "render", "--seed", seedPath, "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Alex Chen"))
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "render", "--format", "docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestPolish_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")

	_, err := execute(t, "polish", "--text", "built things")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
}

func TestPolish_EmptyText(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_PROVIDER", "")

	_, err := execute(t, "polish", "--text", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to polish")
}

func TestPolishInputs(t *testing.T) {
	got, err := polishInputs([]string{" built things ", "", "-", "  "}, strings.NewReader("led the team\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"built things", "led the team"}, got)

	_, err = polishInputs([]string{" ", "-"}, strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to polish")
}

func TestServe_RejectsBadConfig(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 70000}`), 0644))

	_, err := execute(t, "serve", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
