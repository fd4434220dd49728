package projection

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-craft/internal/types"
)

// Defaults used for zero-valued Options fields
const (
	DefaultPresentLabel        = "Present"
	DefaultSkillSeparator      = "、"
	DefaultTechnologySeparator = ", "
)

// Options tunes the display tokens of the projection. The zero value uses the defaults.
type Options struct {
	// PresentLabel replaces the end date of entries marked current
	PresentLabel        string
	SkillSeparator      string
	TechnologySeparator string

	RoleLabel       string
	ContentLabel    string
	HighlightsLabel string
	LinkLabel       string
}

func (o Options) withDefaults() Options {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&o.PresentLabel, DefaultPresentLabel)
	fill(&o.SkillSeparator, DefaultSkillSeparator)
	fill(&o.TechnologySeparator, DefaultTechnologySeparator)
	fill(&o.RoleLabel, "Role")
	fill(&o.ContentLabel, "Responsibilities")
	fill(&o.HighlightsLabel, "Highlights")
	fill(&o.LinkLabel, "Link")
	return o
}

// Project maps a snapshot to its visual tree. It is pure: the same snapshot and options
// always produce an equal Document, and nothing in the result aliases the snapshot.
func Project(doc types.ResumeData, opts Options) Document {
	opts = opts.withDefaults()

	out := Document{
		Header:   projectHeader(doc.PersonalInfo),
		Sections: make([]Section, 0, len(doc.Sections)),
		Theme:    doc.Theme,
		Labels: Labels{
			Present:    opts.PresentLabel,
			Role:       opts.RoleLabel,
			Content:    opts.ContentLabel,
			Highlights: opts.HighlightsLabel,
			Link:       opts.LinkLabel,
		},
	}

	for _, s := range doc.Sections {
		if !s.IsVisible {
			continue
		}
		out.Sections = append(out.Sections, projectSection(s, opts))
	}
	return out
}

func projectHeader(p types.PersonalInfo) Header {
	h := Header{FullName: p.FullName, Title: p.Title, Contacts: []Contact{}}
	for _, c := range []Contact{
		{Kind: ContactEmail, Value: p.Email},
		{Kind: ContactPhone, Value: p.Phone},
		{Kind: ContactLocation, Value: p.Location},
		{Kind: ContactWebsite, Value: p.Website},
		{Kind: ContactLinkedIn, Value: p.LinkedIn},
	} {
		if strings.TrimSpace(c.Value) != "" {
			h.Contacts = append(h.Contacts, c)
		}
	}
	return h
}

func projectSection(s types.Section, opts Options) Section {
	out := Section{ID: s.ID, Type: s.Type, Title: s.Title}

	switch c := s.Content.(type) {
	case types.Summary:
		out.Text = string(c)
	case types.CustomText:
		out.Text = string(c)
	case types.ExperienceList:
		out.Experience = make([]Experience, 0, len(c))
		for _, e := range c {
			out.Experience = append(out.Experience, projectExperience(e, opts))
		}
	case types.EducationList:
		out.Education = make([]Education, 0, len(c))
		for _, e := range c {
			out.Education = append(out.Education, Education{
				ID:          e.ID,
				School:      e.School,
				Degree:      e.Degree,
				Dates:       dates(e.StartDate, e.EndDate, e.Current, opts),
				Description: e.Description,
			})
		}
	case types.ProjectList:
		out.Projects = make([]ProjectEntry, 0, len(c))
		for _, p := range c {
			out.Projects = append(out.Projects, ProjectEntry{
				ID:               p.ID,
				Name:             p.Name,
				Link:             p.Link,
				Description:      p.Description,
				Technologies:     cloneList(p.Technologies),
				TechnologiesText: strings.Join(p.Technologies, opts.TechnologySeparator),
			})
		}
	case types.SkillList:
		out.Skills = make([]SkillGroup, 0, len(c))
		for _, g := range c {
			out.Skills = append(out.Skills, SkillGroup{
				ID:       g.ID,
				Category: g.Category,
				Items:    cloneList(g.Items),
				Text:     strings.Join(g.Items, opts.SkillSeparator),
			})
		}
	}
	return out
}

func projectExperience(e types.ExperienceItem, opts Options) Experience {
	projects := make([]WorkProject, 0, len(e.Projects))
	for _, p := range e.Projects {
		projects = append(projects, WorkProject{
			ID:         p.ID,
			Name:       p.Name,
			Role:       p.Role,
			Dates:      DateRange{Start: p.StartDate, End: p.EndDate},
			Content:    p.Content,
			Highlights: p.Highlights,
		})
	}
	return Experience{
		ID:          e.ID,
		Company:     e.Company,
		Role:        e.Role,
		Dates:       dates(e.StartDate, e.EndDate, e.Current, opts),
		Description: e.Description,
		Projects:    projects,
	}
}

// dates substitutes the present label for the end date of current entries.
// The stored end date is left alone so clearing current shows it again.
func dates(start, end string, current bool, opts Options) DateRange {
	if current {
		end = opts.PresentLabel
	}
	return DateRange{Start: start, End: end}
}

func cloneList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}
