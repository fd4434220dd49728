package document

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-craft/internal/types"
)

var validate = validator.New()

// Apply derives the next snapshot from doc and cmd.
//
// Commands whose section, item or project id does not resolve are no-ops: the input
// snapshot is returned with applied=false and a nil error. Commands whose payload does not
// fit the target are rejected with a non-nil error and the input snapshot.
//
// Only the path from the root to the edited node is copied; every other section, item
// and project is shared with doc.
func Apply(doc types.ResumeData, cmd Command) (next types.ResumeData, applied bool, err error) {
	switch c := cmd.(type) {
	case UpdatePersonalInfo:
		return applyUpdatePersonalInfo(doc, c)
	case ToggleSectionVisibility:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			s.IsVisible = !s.IsVisible
			return s, true, nil
		})
	case RenameSection:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			s.Title = c.Title
			return s, true, nil
		})
	case ReplaceSectionContent:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			content, err := checkContent(s.ID, s.Type, c.Content)
			if err != nil {
				return s, false, err
			}
			s.Content = content
			return s, true, nil
		})
	case AddItem:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			return addItem(s, c.Item)
		})
	case RemoveItem:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			return removeItem(s, c.ItemID)
		})
	case UpdateItemField:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			return updateItemField(s, c.ItemID, c.Field, c.Value)
		})
	case MoveItem:
		return withSection(doc, c.SectionID, func(s types.Section) (types.Section, bool, error) {
			return moveItem(s, c.ItemID, c.NewIndex)
		})
	case AddProject:
		return withExperience(doc, c.SectionID, c.ItemID, func(e types.ExperienceItem) (types.ExperienceItem, bool, error) {
			if c.Project.ID == "" {
				return e, false, &IdentityError{Collection: "projects of " + e.ID, Message: "project id is empty"}
			}
			if indexOf(e.Projects, c.Project.ID) >= 0 {
				return e, false, &IdentityError{Collection: "projects of " + e.ID, ID: c.Project.ID, Message: "project id already used"}
			}
			e.Projects = appendTo(e.Projects, c.Project)
			return e, true, nil
		})
	case RemoveProject:
		return withExperience(doc, c.SectionID, c.ItemID, func(e types.ExperienceItem) (types.ExperienceItem, bool, error) {
			projects, ok := removeByID(e.Projects, c.ProjectID)
			e.Projects = projects
			return e, ok, nil
		})
	case UpdateProjectField:
		return withExperience(doc, c.SectionID, c.ItemID, func(e types.ExperienceItem) (types.ExperienceItem, bool, error) {
			projects, ok, err := updateByID(e.Projects, c.ProjectID, c.Field, c.Value)
			if err != nil {
				return e, false, &FieldError{Target: "WorkProject " + c.ProjectID, Field: c.Field, Cause: err}
			}
			e.Projects = projects
			return e, ok, nil
		})
	case MoveSection:
		i := doc.FindSection(c.SectionID)
		if i < 0 {
			return doc, false, nil
		}
		doc.Sections = moveTo(doc.Sections, i, c.NewIndex)
		return doc, true, nil
	case AddSection:
		return applyAddSection(doc, c.Section)
	case RemoveSection:
		i := doc.FindSection(c.SectionID)
		if i < 0 {
			return doc, false, nil
		}
		doc.Sections = removeAt(doc.Sections, i)
		return doc, true, nil
	case SetTheme:
		return applySetTheme(doc, c.Theme)
	case nil:
		return doc, false, fmt.Errorf("nil command")
	default:
		return doc, false, fmt.Errorf("unsupported command %T", cmd)
	}
}

func applyUpdatePersonalInfo(doc types.ResumeData, c UpdatePersonalInfo) (types.ResumeData, bool, error) {
	info, err := doc.PersonalInfo.WithField(c.Field, c.Value)
	if err != nil {
		return doc, false, &FieldError{Target: "personalInfo", Field: c.Field, Cause: err}
	}
	doc.PersonalInfo = info
	return doc, true, nil
}

func applyAddSection(doc types.ResumeData, s types.Section) (types.ResumeData, bool, error) {
	if s.ID == "" {
		return doc, false, &IdentityError{Collection: "sections", Message: "section id is empty"}
	}
	if doc.FindSection(s.ID) >= 0 {
		return doc, false, &IdentityError{Collection: "sections", ID: s.ID, Message: "section id already used"}
	}
	if !s.Type.Valid() {
		return doc, false, &ShapeMismatchError{SectionID: s.ID, Got: s.Type, Message: fmt.Sprintf("unknown section type %q", s.Type)}
	}
	content, err := checkContent(s.ID, s.Type, s.Content)
	if err != nil {
		return doc, false, err
	}
	s.Content = content
	doc.Sections = appendTo(doc.Sections, s)
	return doc, true, nil
}

// applySetTheme keeps the current value of any field left empty in theme
func applySetTheme(doc types.ResumeData, theme types.Theme) (types.ResumeData, bool, error) {
	if err := validate.Struct(theme); err != nil {
		return doc, false, &FieldError{Target: "theme", Field: themeField(err), Cause: err}
	}
	next := doc.Theme
	if theme.Color != "" {
		next.Color = theme.Color
	}
	if theme.FontScale != "" {
		next.FontScale = theme.FontScale
	}
	doc.Theme = next
	return doc, true, nil
}

func themeField(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Field()
	}
	return "theme"
}

// withSection rewrites the section with the given id. The returned document shares
// every other section with doc.
func withSection(doc types.ResumeData, id string, edit func(types.Section) (types.Section, bool, error)) (types.ResumeData, bool, error) {
	i := doc.FindSection(id)
	if i < 0 {
		return doc, false, nil
	}
	next, ok, err := edit(doc.Sections[i])
	if err != nil || !ok {
		return doc, false, err
	}
	doc.Sections = replaceAt(doc.Sections, i, next)
	return doc, true, nil
}

// withExperience rewrites one entry of an experience section
func withExperience(doc types.ResumeData, sectionID, itemID string, edit func(types.ExperienceItem) (types.ExperienceItem, bool, error)) (types.ResumeData, bool, error) {
	return withSection(doc, sectionID, func(s types.Section) (types.Section, bool, error) {
		list, ok := s.Content.(types.ExperienceList)
		if !ok {
			return s, false, &ShapeMismatchError{SectionID: s.ID, Want: types.SectionExperience, Got: s.Type, Message: "projects only exist inside experience entries"}
		}
		i := indexOf(list, itemID)
		if i < 0 {
			return s, false, nil
		}
		item, ok, err := edit(list[i])
		if err != nil || !ok {
			return s, false, err
		}
		s.Content = replaceAt(list, i, item)
		return s, true, nil
	})
}

// checkContent verifies that c fits a section of type t and returns a private copy of it
func checkContent(sectionID string, t types.SectionType, c types.Content) (types.Content, error) {
	if c != nil && c.Kind() != t {
		return nil, &ShapeMismatchError{SectionID: sectionID, Want: t, Got: c.Kind()}
	}
	content, err := types.CloneContent(t, c)
	if err != nil {
		return nil, &ShapeMismatchError{SectionID: sectionID, Got: t, Message: err.Error()}
	}
	if id, dup := contentDuplicate(content); dup {
		return nil, &IdentityError{Collection: "section " + sectionID, ID: id, Message: "item id empty or repeated"}
	}
	return content, nil
}

func contentDuplicate(c types.Content) (string, bool) {
	switch list := c.(type) {
	case types.ExperienceList:
		if id, dup := duplicateID(list); dup {
			return id, true
		}
		for _, it := range list {
			if id, dup := duplicateID(it.Projects); dup {
				return id, true
			}
		}
	case types.EducationList:
		return duplicateID(list)
	case types.ProjectList:
		return duplicateID(list)
	case types.SkillList:
		return duplicateID(list)
	}
	return "", false
}

func addItem(s types.Section, item types.Item) (types.Section, bool, error) {
	if item == nil {
		return s, false, &ShapeMismatchError{SectionID: s.ID, Want: s.Type, Message: "item is nil"}
	}
	if item.Kind() != s.Type {
		return s, false, &ShapeMismatchError{SectionID: s.ID, Want: s.Type, Got: item.Kind()}
	}

	var (
		next types.Content
		err  error
	)
	switch list := s.Content.(type) {
	case types.ExperienceList:
		next, err = addTo(s.ID, list, item, types.ExperienceItem.Clone)
	case types.EducationList:
		next, err = addTo(s.ID, list, item, types.EducationItem.Clone)
	case types.ProjectList:
		next, err = addTo(s.ID, list, item, types.ProjectItem.Clone)
	case types.SkillList:
		next, err = addTo(s.ID, list, item, types.SkillItem.Clone)
	default:
		return s, false, textSection(s)
	}
	if err != nil {
		return s, false, err
	}
	s.Content = next
	return s, true, nil
}

func addTo[S ~[]E, E types.Item](sectionID string, list S, item types.Item, clone func(E) E) (S, error) {
	v, ok := item.(E)
	if !ok {
		return list, &ShapeMismatchError{SectionID: sectionID, Message: fmt.Sprintf("item has Go type %T", item)}
	}
	id := v.ItemID()
	if id == "" {
		return list, &IdentityError{Collection: "section " + sectionID, Message: "item id is empty"}
	}
	if indexOf(list, id) >= 0 {
		return list, &IdentityError{Collection: "section " + sectionID, ID: id, Message: "item id already used"}
	}
	return appendTo(list, clone(v)), nil
}

func removeItem(s types.Section, itemID string) (types.Section, bool, error) {
	var (
		next types.Content
		ok   bool
	)
	switch list := s.Content.(type) {
	case types.ExperienceList:
		next, ok = removeByID(list, itemID)
	case types.EducationList:
		next, ok = removeByID(list, itemID)
	case types.ProjectList:
		next, ok = removeByID(list, itemID)
	case types.SkillList:
		next, ok = removeByID(list, itemID)
	default:
		return s, false, textSection(s)
	}
	s.Content = next
	return s, ok, nil
}

func updateItemField(s types.Section, itemID, field string, value any) (types.Section, bool, error) {
	var (
		next types.Content
		ok   bool
		err  error
	)
	switch list := s.Content.(type) {
	case types.ExperienceList:
		next, ok, err = updateByID(list, itemID, field, value)
	case types.EducationList:
		next, ok, err = updateByID(list, itemID, field, value)
	case types.ProjectList:
		next, ok, err = updateByID(list, itemID, field, value)
	case types.SkillList:
		next, ok, err = updateByID(list, itemID, field, value)
	default:
		return s, false, textSection(s)
	}
	if err != nil {
		return s, false, &FieldError{Target: string(s.Type) + " item " + itemID, Field: field, Cause: err}
	}
	s.Content = next
	return s, ok, nil
}

func moveItem(s types.Section, itemID string, newIndex int) (types.Section, bool, error) {
	var (
		next types.Content
		ok   bool
	)
	switch list := s.Content.(type) {
	case types.ExperienceList:
		next, ok = moveByID(list, itemID, newIndex)
	case types.EducationList:
		next, ok = moveByID(list, itemID, newIndex)
	case types.ProjectList:
		next, ok = moveByID(list, itemID, newIndex)
	case types.SkillList:
		next, ok = moveByID(list, itemID, newIndex)
	default:
		return s, false, textSection(s)
	}
	s.Content = next
	return s, ok, nil
}

func textSection(s types.Section) error {
	return &ShapeMismatchError{SectionID: s.ID, Got: s.Type, Message: fmt.Sprintf("%s sections hold text, not items", s.Type)}
}
