package seed

import (
	_ "embed"
	"sync"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/types"
)

//go:embed template.json
var templateJSON []byte

var (
	templateOnce sync.Once
	templateDoc  types.ResumeData
	templateErr  error
)

// Template returns the built-in sample résumé. Every call returns an independent copy.
func Template() (types.ResumeData, error) {
	templateOnce.Do(func() {
		// the template carries all of its ids, so the allocator is never consulted
		templateDoc, templateErr = Load(templateJSON, FormatJSON, ids.NewSequence("template"))
	})
	if templateErr != nil {
		return types.ResumeData{}, templateErr
	}
	return cloneDocument(templateDoc), nil
}

// Empty returns a document with one empty, visible section of every standard type
func Empty(alloc ids.Allocator) types.ResumeData {
	if alloc == nil {
		alloc = ids.NewUUIDAllocator()
	}

	standard := []types.SectionType{
		types.SectionSummary,
		types.SectionExperience,
		types.SectionEducation,
		types.SectionSkills,
		types.SectionProjects,
	}
	sections := make([]types.Section, 0, len(standard))
	for _, t := range standard {
		content, _ := types.EmptyContent(t)
		sections = append(sections, types.Section{
			ID:        alloc.Allocate(),
			Type:      t,
			Title:     DefaultTitles[t],
			IsVisible: true,
			Content:   content,
		})
	}
	return types.ResumeData{Sections: sections, Theme: types.DefaultTheme()}
}

func cloneDocument(doc types.ResumeData) types.ResumeData {
	sections := make([]types.Section, len(doc.Sections))
	for i, s := range doc.Sections {
		s.Content, _ = types.CloneContent(s.Type, s.Content)
		sections[i] = s
	}
	doc.Sections = sections
	return doc
}
