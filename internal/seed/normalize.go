package seed

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/types"
)

// DefaultTitles are the section titles used when a seed leaves a title empty
var DefaultTitles = map[types.SectionType]string{
	types.SectionSummary:    "Summary",
	types.SectionExperience: "Experience",
	types.SectionEducation:  "Education",
	types.SectionSkills:     "Skills",
	types.SectionProjects:   "Projects",
	types.SectionCustom:     "Additional Information",
}

// Normalize brings a decoded seed into a shape that satisfies every document invariant.
// Missing ids are allocated, missing lists become empty, list entries are trimmed and
// deduplicated, and an unset theme falls back to the default. Ids that are present but
// repeated are not renamed; the seed is rejected instead.
func Normalize(doc types.ResumeData, alloc ids.Allocator) (types.ResumeData, error) {
	if alloc == nil {
		alloc = ids.NewUUIDAllocator()
	}

	doc.Theme = normalizeTheme(doc.Theme)

	sections := make([]types.Section, 0, len(doc.Sections))
	for i, s := range doc.Sections {
		if !s.Type.Valid() {
			return types.ResumeData{}, &NormalizationError{
				Message: fmt.Sprintf("section %d has unknown type %q", i, s.Type),
			}
		}
		if s.ID == "" {
			s.ID = alloc.Allocate()
		}
		if strings.TrimSpace(s.Title) == "" {
			s.Title = DefaultTitles[s.Type]
		}

		content, err := types.CloneContent(s.Type, s.Content)
		if err != nil {
			return types.ResumeData{}, &NormalizationError{Message: fmt.Sprintf("section %s", s.ID), Cause: err}
		}
		s.Content = normalizeContent(content, alloc)
		sections = append(sections, s)
	}
	doc.Sections = sections

	if err := document.Validate(doc); err != nil {
		return types.ResumeData{}, &NormalizationError{Message: "seed violates document invariants", Cause: err}
	}
	return doc, nil
}

func normalizeTheme(t types.Theme) types.Theme {
	def := types.DefaultTheme()
	if t.Color == "" {
		t.Color = def.Color
	}
	if t.FontScale == "" {
		t.FontScale = def.FontScale
	}
	return t
}

// normalizeContent fills in ids and cleans list entries. c must be a private copy.
func normalizeContent(c types.Content, alloc ids.Allocator) types.Content {
	assign := func(id *string) {
		if *id == "" {
			*id = alloc.Allocate()
		}
	}

	switch list := c.(type) {
	case types.ExperienceList:
		for i := range list {
			assign(&list[i].ID)
			for j := range list[i].Projects {
				assign(&list[i].Projects[j].ID)
			}
		}
	case types.EducationList:
		for i := range list {
			assign(&list[i].ID)
		}
	case types.ProjectList:
		for i := range list {
			assign(&list[i].ID)
			list[i].Technologies = cleanList(list[i].Technologies)
		}
	case types.SkillList:
		for i := range list {
			assign(&list[i].ID)
			list[i].Items = cleanList(list[i].Items)
		}
	}
	return c
}

// cleanList trims entries, drops empty ones and removes exact duplicates, keeping first occurrences
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
