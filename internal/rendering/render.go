package rendering

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-craft/internal/projection"
)

// Format selects an output of Render
type Format string

// Output formats
const (
	FormatHTML  Format = "html"
	FormatLaTeX Format = "latex"
	FormatJSON  Format = "json"
)

// Render renders a projection in the given text format
func Render(doc projection.Document, format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		out, err := RenderHTML(doc, HTMLOptions{})
		return []byte(out), err
	case FormatLaTeX:
		out, err := RenderLaTeX(doc)
		return []byte(out), err
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, &RenderError{Message: "failed to marshal projection", Cause: err}
		}
		return out, nil
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
}
