// Package schemas embeds the JSON Schemas of the documents resume-craft exchanges.
package schemas

import _ "embed"

// Resume is the JSON Schema of a seed résumé document
//
//go:embed resume.schema.json
var Resume string
