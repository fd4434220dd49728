package types

import (
	"encoding/json"
	"fmt"
)

// Content is the payload of a section. The set of implementations is closed:
// Summary, CustomText, ExperienceList, EducationList, ProjectList and SkillList.
type Content interface {
	// Kind returns the section type this payload belongs to
	Kind() SectionType
	// Len returns the number of items, or 0 for text payloads
	Len() int

	isContent()
}

// Summary is the plain-text payload of a summary section
type Summary string

// CustomText is the plain-text payload of a custom section
type CustomText string

// ExperienceList is the payload of an experience section
type ExperienceList []ExperienceItem

// EducationList is the payload of an education section
type EducationList []EducationItem

// ProjectList is the payload of a projects section
type ProjectList []ProjectItem

// SkillList is the payload of a skills section
type SkillList []SkillItem

func (Summary) Kind() SectionType { return SectionSummary }
func (CustomText) Kind() SectionType { return SectionCustom }
func (ExperienceList) Kind() SectionType { return SectionExperience }
func (EducationList) Kind() SectionType { return SectionEducation }
func (ProjectList) Kind() SectionType { return SectionProjects }
func (SkillList) Kind() SectionType { return SectionSkills }

func (Summary) Len() int { return 0 }
func (CustomText) Len() int { return 0 }
func (c ExperienceList) Len() int { return len(c) }
func (c EducationList) Len() int { return len(c) }
func (c ProjectList) Len() int { return len(c) }
func (c SkillList) Len() int { return len(c) }
func (Summary) isContent() {}
func (CustomText) isContent() {}
func (ExperienceList) isContent() {}
func (EducationList) isContent() {}
func (ProjectList) isContent() {}
func (SkillList) isContent() {}

// EmptyContent returns the zero payload for a section type
func EmptyContent(t SectionType) (Content, error) {
	switch t {
	case SectionSummary:
		return Summary(""), nil
	case SectionCustom:
		return CustomText(""), nil
	case SectionExperience:
		return ExperienceList{}, nil
	case SectionEducation:
		return EducationList{}, nil
	case SectionProjects:
		return ProjectList{}, nil
	case SectionSkills:
		return SkillList{}, nil
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
}

// Items returns the list payload as a slice of Item, or nil for text payloads
func Items(c Content) []Item {
	var out []Item
	switch list := c.(type) {
	case ExperienceList:
		out = make([]Item, 0, len(list))
		for _, it := range list {
			out = append(out, it)
		}
	case EducationList:
		out = make([]Item, 0, len(list))
		for _, it := range list {
			out = append(out, it)
		}
	case ProjectList:
		out = make([]Item, 0, len(list))
		for _, it := range list {
			out = append(out, it)
		}
	case SkillList:
		out = make([]Item, 0, len(list))
		for _, it := range list {
			out = append(out, it)
		}
	}
	return out
}

// sectionJSON mirrors Section with the payload left undecoded.
// A missing isVisible decodes as visible.
type sectionJSON struct {
	ID        string          `json:"id"`
	Type      SectionType     `json:"type"`
	Title     string          `json:"title"`
	IsVisible *bool           `json:"isVisible"`
	Content   json.RawMessage `json:"content"`
}

// MarshalJSON writes the payload as a string or an array, depending on its kind
func (s Section) MarshalJSON() ([]byte, error) {
	content := s.Content
	if content == nil {
		empty, err := EmptyContent(s.Type)
		if err != nil {
			return nil, err
		}
		content = empty
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content of section %s: %w", s.ID, err)
	}

	return json.Marshal(sectionJSON{
		ID:        s.ID,
		Type:      s.Type,
		Title:     s.Title,
		IsVisible: &s.IsVisible,
		Content:   raw,
	})
}

// UnmarshalJSON decodes the payload according to the section type.
// A missing or null payload decodes to the empty payload of that type, and a
// missing isVisible flag decodes as true.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("section %q: unknown type %q", raw.ID, raw.Type)
	}

	content, err := decodeContent(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", raw.ID, err)
	}

	*s = Section{
		ID:        raw.ID,
		Type:      raw.Type,
		Title:     raw.Title,
		IsVisible: raw.IsVisible == nil || *raw.IsVisible,
		Content:   content,
	}
	return nil
}

// DecodeContent decodes a raw JSON payload for the given section type
func DecodeContent(t SectionType, data []byte) (Content, error) {
	return decodeContent(t, data)
}

func decodeContent(t SectionType, data json.RawMessage) (Content, error) {
	if len(data) == 0 || string(data) == "null" {
		return EmptyContent(t)
	}

	var (
		content Content
		err     error
	)
	switch t {
	case SectionSummary:
		var text string
		err = json.Unmarshal(data, &text)
		content = Summary(text)
	case SectionCustom:
		var text string
		err = json.Unmarshal(data, &text)
		content = CustomText(text)
	case SectionExperience:
		var list ExperienceList
		err = json.Unmarshal(data, &list)
		content = list
	case SectionEducation:
		var list EducationList
		err = json.Unmarshal(data, &list)
		content = list
	case SectionProjects:
		var list ProjectList
		err = json.Unmarshal(data, &list)
		content = list
	case SectionSkills:
		var list SkillList
		err = json.Unmarshal(data, &list)
		content = list
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("content does not match type %s: %w", t, err)
	}
	return content, nil
}

// CloneContent returns a copy of c with fresh top-level slices. Nil content
// and nil lists become the empty payload of their kind.
func CloneContent(t SectionType, c Content) (Content, error) {
	if c == nil {
		return EmptyContent(t)
	}
	switch list := c.(type) {
	case ExperienceList:
		out := make(ExperienceList, len(list))
		for i, it := range list {
			out[i] = it.Clone()
		}
		return out, nil
	case EducationList:
		out := make(EducationList, len(list))
		copy(out, list)
		return out, nil
	case ProjectList:
		out := make(ProjectList, len(list))
		for i, it := range list {
			out[i] = it.Clone()
		}
		return out, nil
	case SkillList:
		out := make(SkillList, len(list))
		for i, it := range list {
			out[i] = it.Clone()
		}
		return out, nil
	default:
		return c, nil
	}
}
