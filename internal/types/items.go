package types

import "fmt"

// Item is a top-level element of a list section
type Item interface {
	ItemID() string
	// Kind returns the section type whose content may hold this item
	Kind() SectionType
}

// ExperienceItem is one employer entry. Projects is a second nesting level with its own ids.
type ExperienceItem struct {
	ID          string        `json:"id"`
	Company     string        `json:"company"`
	Role        string        `json:"role"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Current     bool          `json:"current"`
	Description string        `json:"description"`
	Projects    []WorkProject `json:"projects"`
}

// WorkProject is a project nested inside an experience entry
type WorkProject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Content    string `json:"content"`
	Highlights string `json:"highlights"`
}

// EducationItem is one school entry
type EducationItem struct {
	ID          string `json:"id"`
	School      string `json:"school"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ProjectItem is a standalone (personal or open source) project
type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Link         string   `json:"link"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// SkillItem is a named group of skills
type SkillItem struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

func (e ExperienceItem) ItemID() string { return e.ID }
func (e EducationItem) ItemID() string { return e.ID }
func (p ProjectItem) ItemID() string { return p.ID }
func (s SkillItem) ItemID() string { return s.ID }
func (w WorkProject) ItemID() string { return w.ID }

func (ExperienceItem) Kind() SectionType { return SectionExperience }
func (EducationItem) Kind() SectionType { return SectionEducation }
func (ProjectItem) Kind() SectionType { return SectionProjects }
func (SkillItem) Kind() SectionType { return SectionSkills }

// Field names shared by several item types
const (
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldCurrent     = "current"
	FieldDescription = "description"
	FieldRole        = "role"
	FieldName        = "name"
)

// UnknownFieldError reports a field name that the target type does not have
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s has no editable field %q", e.Type, e.Field)
}

// FieldTypeError reports a value whose Go type does not fit the field
type FieldTypeError struct {
	Type  string
	Field string
	Want  string
	Got   any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s.%s expects %s, got %T", e.Type, e.Field, e.Want, e.Got)
}

// WithField returns a copy of the item with exactly one field replaced.
// Projects cannot be set here; they are edited through the project commands.
func (e ExperienceItem) WithField(field string, value any) (ExperienceItem, error) {
	const typeName = "ExperienceItem"
	if field == FieldCurrent {
		b, err := boolValue(typeName, field, value)
		if err != nil {
			return e, err
		}
		e.Current = b
		return e, nil
	}

	var target *string
	switch field {
	case "company":
		target = &e.Company
	case FieldRole:
		target = &e.Role
	case FieldStartDate:
		target = &e.StartDate
	case FieldEndDate:
		target = &e.EndDate
	case FieldDescription:
		target = &e.Description
	default:
		return e, &UnknownFieldError{Type: typeName, Field: field}
	}

	s, err := stringValue(typeName, field, value)
	if err != nil {
		return e, err
	}
	*target = s
	return e, nil
}

// WithField returns a copy of the item with exactly one field replaced
func (e EducationItem) WithField(field string, value any) (EducationItem, error) {
	const typeName = "EducationItem"
	if field == FieldCurrent {
		b, err := boolValue(typeName, field, value)
		if err != nil {
			return e, err
		}
		e.Current = b
		return e, nil
	}

	var target *string
	switch field {
	case "school":
		target = &e.School
	case "degree":
		target = &e.Degree
	case FieldStartDate:
		target = &e.StartDate
	case FieldEndDate:
		target = &e.EndDate
	case FieldDescription:
		target = &e.Description
	default:
		return e, &UnknownFieldError{Type: typeName, Field: field}
	}

	s, err := stringValue(typeName, field, value)
	if err != nil {
		return e, err
	}
	*target = s
	return e, nil
}

// WithField returns a copy of the item with exactly one field replaced
func (p ProjectItem) WithField(field string, value any) (ProjectItem, error) {
	const typeName = "ProjectItem"
	if field == "technologies" {
		list, err := listValue(typeName, field, value)
		if err != nil {
			return p, err
		}
		p.Technologies = list
		return p, nil
	}

	var target *string
	switch field {
	case FieldName:
		target = &p.Name
	case "link":
		target = &p.Link
	case FieldDescription:
		target = &p.Description
	default:
		return p, &UnknownFieldError{Type: typeName, Field: field}
	}

	s, err := stringValue(typeName, field, value)
	if err != nil {
		return p, err
	}
	*target = s
	return p, nil
}

// WithField returns a copy of the item with exactly one field replaced
func (s SkillItem) WithField(field string, value any) (SkillItem, error) {
	const typeName = "SkillItem"
	switch field {
	case "category":
		v, err := stringValue(typeName, field, value)
		if err != nil {
			return s, err
		}
		s.Category = v
	case "items":
		list, err := listValue(typeName, field, value)
		if err != nil {
			return s, err
		}
		s.Items = list
	default:
		return s, &UnknownFieldError{Type: typeName, Field: field}
	}
	return s, nil
}

// WithField returns a copy of the project with exactly one field replaced
func (w WorkProject) WithField(field string, value any) (WorkProject, error) {
	const typeName = "WorkProject"
	var target *string
	switch field {
	case FieldName:
		target = &w.Name
	case FieldRole:
		target = &w.Role
	case FieldStartDate:
		target = &w.StartDate
	case FieldEndDate:
		target = &w.EndDate
	case "content":
		target = &w.Content
	case "highlights":
		target = &w.Highlights
	default:
		return w, &UnknownFieldError{Type: typeName, Field: field}
	}

	s, err := stringValue(typeName, field, value)
	if err != nil {
		return w, err
	}
	*target = s
	return w, nil
}

func stringValue(typeName, field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &FieldTypeError{Type: typeName, Field: field, Want: "string", Got: value}
	}
	return s, nil
}

func boolValue(typeName, field string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &FieldTypeError{Type: typeName, Field: field, Want: "bool", Got: value}
	}
	return b, nil
}

// listValue copies the list so the stored item never aliases caller memory
func listValue(typeName, field string, value any) ([]string, error) {
	list, ok := value.([]string)
	if !ok {
		return nil, &FieldTypeError{Type: typeName, Field: field, Want: "[]string", Got: value}
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// Clone returns a copy whose slices are never nil and never alias the receiver's
func (e ExperienceItem) Clone() ExperienceItem {
	projects := make([]WorkProject, len(e.Projects))
	copy(projects, e.Projects)
	e.Projects = projects
	return e
}

// Clone returns a copy of the item
func (e EducationItem) Clone() EducationItem { return e }

// Clone returns a copy whose technology list is never nil
func (p ProjectItem) Clone() ProjectItem {
	p.Technologies = cloneStrings(p.Technologies)
	return p
}

// Clone returns a copy whose skill list is never nil
func (s SkillItem) Clone() SkillItem {
	s.Items = cloneStrings(s.Items)
	return s
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
