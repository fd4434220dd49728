package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"sync"

	"github.com/jonathan/resume-craft/internal/projection"
	"github.com/jonathan/resume-craft/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlOnce sync.Once
	htmlTmpl *template.Template
	htmlErr  error
)

// fontSizes maps the theme font scale to the base font size in pixels
var fontSizes = map[types.FontScale]int{
	types.FontScaleSmall:  13,
	types.FontScaleMedium: 14,
	types.FontScaleLarge:  15,
}

// htmlData is the data passed to the HTML template
type htmlData struct {
	Doc      projection.Document
	Accent   template.CSS
	FontSize int
	Lang     string
}

// HTMLOptions controls page-level settings of the HTML renderer
type HTMLOptions struct {
	// Lang is the value of the html lang attribute, "en" when empty
	Lang string
}

// RenderHTML renders a projection as a self-contained, print-ready A4 HTML page
func RenderHTML(doc projection.Document, opts HTMLOptions) (string, error) {
	tmpl, err := parseHTMLTemplate()
	if err != nil {
		return "", err
	}

	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, htmlData{
		Doc:      doc,
		Accent:   template.CSS(accentColor(doc.Theme)),
		FontSize: fontSize(doc.Theme),
		Lang:     lang,
	}); err != nil {
		return "", &TemplateError{
			Message: "failed to execute HTML template",
			Cause:   err,
		}
	}
	return buf.String(), nil
}

func parseHTMLTemplate() (*template.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = template.ParseFS(templateFS, "templates/resume.html.tmpl")
		if htmlErr != nil {
			htmlErr = &TemplateError{Message: "failed to parse HTML template", Cause: htmlErr}
		}
	})
	return htmlTmpl, htmlErr
}

// accentColor returns the theme color, or the default one when the theme color is not a hex color
func accentColor(t types.Theme) string {
	if isHexColor(t.Color) {
		return t.Color
	}
	return types.DefaultTheme().Color
}

func fontSize(t types.Theme) int {
	if size, ok := fontSizes[t.FontScale]; ok {
		return size
	}
	return fontSizes[types.FontScaleMedium]
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
