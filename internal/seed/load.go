package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/schemas"
	"github.com/jonathan/resume-craft/internal/types"
)

// Format is the encoding of a seed document
type Format string

// Supported seed formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is not YAML is JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads, validates and normalizes a seed document from a JSON or YAML file
func LoadFile(path string, alloc ids.Allocator) (types.ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeData{}, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Load(content, FormatFromPath(path), alloc)
}

// Load validates raw seed content against the resume schema, decodes it and normalizes it
func Load(content []byte, format Format, alloc ids.Allocator) (types.ResumeData, error) {
	jsonContent, err := toJSON(content, format)
	if err != nil {
		return types.ResumeData{}, err
	}

	if err := schemas.ValidateResume(jsonContent); err != nil {
		return types.ResumeData{}, &LoadError{
			Message: "seed does not match the resume schema",
			Cause:   err,
		}
	}

	var doc types.ResumeData
	if err := json.Unmarshal(jsonContent, &doc); err != nil {
		return types.ResumeData{}, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return Normalize(doc, alloc)
}

// toJSON converts YAML seeds to JSON so both formats share one schema and one decoder
func toJSON(content []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return content, nil
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(content, &root); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal YAML", Cause: err}
		}
		textScalars(&root)
		var v any
		if err := root.Decode(&v); err != nil {
			return nil, &LoadError{Message: "failed to decode YAML", Cause: err}
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, &LoadError{Message: "YAML seed cannot be represented as JSON", Cause: err}
		}
		return out, nil
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unsupported seed format %q", format)}
	}
}

// boolKeys name the only non-text scalar fields of a seed document
var boolKeys = map[string]bool{"isVisible": true, "current": true}

// textScalars marks every scalar value as a string so that unquoted dates such as
// 2022.12 and numeric phone numbers keep their literal text. Values of boolKeys and
// nulls keep their YAML type.
func textScalars(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			textScalars(c)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if boolKeys[n.Content[i].Value] {
				continue
			}
			textScalars(n.Content[i+1])
		}
	case yaml.ScalarNode:
		if n.ShortTag() != "!!null" {
			n.Tag = "!!str"
			n.Style = yaml.DoubleQuotedStyle
		}
	}
}
