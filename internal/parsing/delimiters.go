// Package parsing turns raw editor input into the list fields of the résumé model.
package parsing

import (
	"strings"
)

// technologySeparators are the delimiters accepted in a project's technology list
const technologySeparators = ","

// skillSeparators accept ASCII and full-width commas plus the ideographic enumeration comma
const skillSeparators = ",，、"

// SplitTechnologies splits free text such as "Go, Redis" into a technology list
func SplitTechnologies(text string) []string {
	return splitOn(text, technologySeparators)
}

// SplitSkills splits free text such as "Kotlin, Java、Go" into a skill list
func SplitSkills(text string) []string {
	return splitOn(text, skillSeparators)
}

// splitOn splits text on any rune in separators, trims each part and drops empty parts.
// The result is never nil.
func splitOn(text, separators string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// JoinList renders a list back into the editable free-text form
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
