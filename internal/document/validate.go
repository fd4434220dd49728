package document

import (
	"fmt"

	"github.com/jonathan/resume-craft/internal/types"
)

// Validate checks the structural invariants of a document: unique non-empty ids at every
// level, a known type for every section, content whose kind matches that type, and a
// well-formed theme. It returns a *ValidationError listing every problem found.
func Validate(doc types.ResumeData) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := make(map[string]struct{}, len(doc.Sections))
	for i, s := range doc.Sections {
		switch {
		case s.ID == "":
			report("section %d has an empty id", i)
		default:
			if _, dup := seen[s.ID]; dup {
				report("section id %q is used more than once", s.ID)
			}
			seen[s.ID] = struct{}{}
		}

		if !s.Type.Valid() {
			report("section %q has unknown type %q", s.ID, s.Type)
			continue
		}
		if s.Content == nil {
			report("section %q has no content", s.ID)
			continue
		}
		if s.Content.Kind() != s.Type {
			report("section %q of type %s holds %s content", s.ID, s.Type, s.Content.Kind())
			continue
		}
		if id, dup := contentDuplicate(s.Content); dup {
			if id == "" {
				report("section %q contains an entry with an empty id", s.ID)
			} else {
				report("section %q contains id %q more than once", s.ID, id)
			}
		}
	}

	if err := validate.Struct(doc.Theme); err != nil {
		report("theme: %v", err)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
