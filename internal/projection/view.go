// Package projection derives the read-only visual tree of a résumé from a document snapshot.
package projection

import "github.com/jonathan/resume-craft/internal/types"

// Document is the rendered view of one snapshot. Hidden sections are absent.
type Document struct {
	Header   Header      `json:"header"`
	Sections []Section   `json:"sections"`
	Theme    types.Theme `json:"theme"`
	Labels   Labels      `json:"labels"`
}

// Header is the name block at the top of the page
type Header struct {
	FullName string    `json:"fullName"`
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
}

// ContactKind identifies a contact line
type ContactKind string

// Contact kinds in display order
const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactLocation ContactKind = "location"
	ContactWebsite  ContactKind = "website"
	ContactLinkedIn ContactKind = "linkedin"
)

// Contact is one non-empty contact field
type Contact struct {
	Kind  ContactKind `json:"kind"`
	Value string      `json:"value"`
}

// Section is a visible section. Exactly one payload field is populated, chosen by Type.
type Section struct {
	ID    string            `json:"id"`
	Type  types.SectionType `json:"type"`
	Title string            `json:"title"`

	Text       string         `json:"text,omitempty"`
	Experience []Experience   `json:"experience,omitempty"`
	Education  []Education    `json:"education,omitempty"`
	Projects   []ProjectEntry `json:"projects,omitempty"`
	Skills     []SkillGroup   `json:"skills,omitempty"`
}

// DateRange is a start/end pair ready for display
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Empty reports whether both ends are blank
func (d DateRange) Empty() bool {
	return d.Start == "" && d.End == ""
}

// Experience is one employer entry
type Experience struct {
	ID          string        `json:"id"`
	Company     string        `json:"company"`
	Role        string        `json:"role"`
	Dates       DateRange     `json:"dates"`
	Description string        `json:"description"`
	Projects    []WorkProject `json:"projects"`
}

// WorkProject is a project nested in an experience entry
type WorkProject struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Dates      DateRange `json:"dates"`
	Content    string    `json:"content"`
	Highlights string    `json:"highlights"`
}

// Education is one school entry
type Education struct {
	ID          string    `json:"id"`
	School      string    `json:"school"`
	Degree      string    `json:"degree"`
	Dates       DateRange `json:"dates"`
	Description string    `json:"description"`
}

// ProjectEntry is a standalone project. TechnologiesText is the joined display form.
type ProjectEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Link             string   `json:"link"`
	Description      string   `json:"description"`
	Technologies     []string `json:"technologies"`
	TechnologiesText string   `json:"technologiesText"`
}

// SkillGroup is one skill category. Text is the joined display form.
type SkillGroup struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Text     string   `json:"text"`
}

// Labels are the fixed captions used by renderers
type Labels struct {
	Present    string `json:"present"`
	Role       string `json:"role"`
	Content    string `json:"content"`
	Highlights string `json:"highlights"`
	Link       string `json:"link"`
}
