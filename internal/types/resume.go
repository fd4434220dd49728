// Package types provides type definitions for the résumé document edited by resume-craft.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeData is the root aggregate of an editing session
type ResumeData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Sections     []Section    `json:"sections"`
	Theme        Theme        `json:"theme"`
}

// PersonalInfo is the fixed-shape header of the résumé. Every field may be empty.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
}

// Personal info field names as they appear in JSON
const (
	FieldFullName = "fullName"
	FieldTitle    = "title"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldWebsite  = "website"
	FieldLinkedIn = "linkedin"
)

// WithField returns a copy with exactly one field replaced
func (p PersonalInfo) WithField(field, value string) (PersonalInfo, error) {
	switch field {
	case FieldFullName:
		p.FullName = value
	case FieldTitle:
		p.Title = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldLocation:
		p.Location = value
	case FieldWebsite:
		p.Website = value
	case FieldLinkedIn:
		p.LinkedIn = value
	default:
		return p, &UnknownFieldError{Type: "PersonalInfo", Field: field}
	}
	return p, nil
}

// FontScale selects the base font size of the printed page
type FontScale string

// Font scales understood by the renderers
const (
	FontScaleSmall  FontScale = "sm"
	FontScaleMedium FontScale = "md"
	FontScaleLarge  FontScale = "lg"
)

// Theme holds display-only settings
type Theme struct {
	Color     string    `json:"color" validate:"omitempty,hexcolor"`
	FontScale FontScale `json:"fontScale" validate:"omitempty,oneof=sm md lg"`
}

// DefaultTheme returns the theme used when a document does not provide one
func DefaultTheme() Theme {
	return Theme{Color: "#2563eb", FontScale: FontScaleMedium}
}

// SectionType determines which content shape a section holds
type SectionType string

// Section types
const (
	SectionSummary    SectionType = "summary"
	SectionExperience SectionType = "experience"
	SectionEducation  SectionType = "education"
	SectionSkills     SectionType = "skills"
	SectionProjects   SectionType = "projects"
	SectionCustom     SectionType = "custom"
)

// SectionTypes lists every valid section type in canonical order
var SectionTypes = []SectionType{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCustom,
}

// Valid reports whether t is one of the known section types
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Section is a titled, independently hideable block of the résumé.
// Content always has the shape selected by Type.
type Section struct {
	ID        string      `json:"id"`
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	IsVisible bool        `json:"isVisible"`
	Content   Content     `json:"content"`
}

// FindSection returns the index of the section with the given id, or -1
func (d ResumeData) FindSection(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}
