package document

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/parsing"
	"github.com/jonathan/resume-craft/internal/types"
)

// DecodeError represents a command payload that cannot be decoded
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// wireCommand is the JSON envelope of every command
type wireCommand struct {
	Type      string          `json:"type"`
	SectionID string          `json:"sectionId"`
	ItemID    string          `json:"itemId"`
	ProjectID string          `json:"projectId"`
	Field     string          `json:"field"`
	Value     json.RawMessage `json:"value"`
	Content   json.RawMessage `json:"content"`
	Item      json.RawMessage `json:"item"`
	Project   json.RawMessage `json:"project"`
	Section   json.RawMessage `json:"section"`
	Theme     *types.Theme    `json:"theme"`
	Title     *string         `json:"title"`
	NewIndex  *int            `json:"newIndex"`
}

// DecodeCommand decodes a JSON command such as {"type":"addItem","sectionId":"...","item":{...}}.
//
// Payloads are decoded against the type of the section they target in doc. If that section
// does not exist the command still decodes and resolves to a no-op when applied. Item,
// project and section ids omitted by the caller are allocated from alloc. List fields
// (technologies, items) may be sent as free text and are split the way the editor splits them.
func DecodeCommand(data []byte, doc types.ResumeData, alloc ids.Allocator) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &DecodeError{Message: "invalid command JSON", Cause: err}
	}

	switch w.Type {
	case CmdUpdatePersonalInfo:
		var value string
		if err := decodeValue(w.Value, &value); err != nil {
			return nil, err
		}
		return UpdatePersonalInfo{Field: w.Field, Value: value}, nil
	case CmdToggleSectionVisibility:
		return ToggleSectionVisibility{SectionID: w.SectionID}, nil
	case CmdRenameSection:
		if w.Title == nil {
			return nil, &DecodeError{Message: "renameSection requires title"}
		}
		return RenameSection{SectionID: w.SectionID, Title: *w.Title}, nil
	case CmdReplaceSectionContent:
		t, ok := sectionType(doc, w.SectionID)
		if !ok {
			return ReplaceSectionContent{SectionID: w.SectionID}, nil
		}
		content, err := types.DecodeContent(t, w.Content)
		if err != nil {
			return nil, &DecodeError{Message: "invalid content", Cause: err}
		}
		assignContentIDs(content, alloc)
		return ReplaceSectionContent{SectionID: w.SectionID, Content: content}, nil
	case CmdAddItem:
		t, ok := sectionType(doc, w.SectionID)
		if !ok {
			return AddItem{SectionID: w.SectionID}, nil
		}
		item, err := decodeItem(t, w.Item, alloc)
		if err != nil {
			return nil, err
		}
		return AddItem{SectionID: w.SectionID, Item: item}, nil
	case CmdRemoveItem:
		return RemoveItem{SectionID: w.SectionID, ItemID: w.ItemID}, nil
	case CmdUpdateItemField:
		value, err := decodeFieldValue(w.Field, w.Value)
		if err != nil {
			return nil, err
		}
		return UpdateItemField{SectionID: w.SectionID, ItemID: w.ItemID, Field: w.Field, Value: value}, nil
	case CmdMoveItem:
		if w.NewIndex == nil {
			return nil, &DecodeError{Message: "moveItem requires newIndex"}
		}
		return MoveItem{SectionID: w.SectionID, ItemID: w.ItemID, NewIndex: *w.NewIndex}, nil
	case CmdAddProject:
		var p types.WorkProject
		if len(w.Project) > 0 {
			if err := json.Unmarshal(w.Project, &p); err != nil {
				return nil, &DecodeError{Message: "invalid project", Cause: err}
			}
		}
		if p.ID == "" {
			p.ID = alloc.Allocate()
		}
		return AddProject{SectionID: w.SectionID, ItemID: w.ItemID, Project: p}, nil
	case CmdRemoveProject:
		return RemoveProject{SectionID: w.SectionID, ItemID: w.ItemID, ProjectID: w.ProjectID}, nil
	case CmdUpdateProjectField:
		value, err := decodeFieldValue(w.Field, w.Value)
		if err != nil {
			return nil, err
		}
		return UpdateProjectField{SectionID: w.SectionID, ItemID: w.ItemID, ProjectID: w.ProjectID, Field: w.Field, Value: value}, nil
	case CmdMoveSection:
		if w.NewIndex == nil {
			return nil, &DecodeError{Message: "moveSection requires newIndex"}
		}
		return MoveSection{SectionID: w.SectionID, NewIndex: *w.NewIndex}, nil
	case CmdAddSection:
		var s types.Section
		if err := json.Unmarshal(w.Section, &s); err != nil {
			return nil, &DecodeError{Message: "invalid section", Cause: err}
		}
		if s.ID == "" {
			s.ID = alloc.Allocate()
		}
		assignContentIDs(s.Content, alloc)
		return AddSection{Section: s}, nil
	case CmdRemoveSection:
		return RemoveSection{SectionID: w.SectionID}, nil
	case CmdSetTheme:
		if w.Theme == nil {
			return nil, &DecodeError{Message: "setTheme requires theme"}
		}
		return SetTheme{Theme: *w.Theme}, nil
	case "":
		return nil, &DecodeError{Message: "command type is required"}
	default:
		return nil, &DecodeError{Message: fmt.Sprintf("unknown command type %q", w.Type)}
	}
}

func sectionType(doc types.ResumeData, id string) (types.SectionType, bool) {
	i := doc.FindSection(id)
	if i < 0 {
		return "", false
	}
	return doc.Sections[i].Type, true
}

func decodeValue(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return &DecodeError{Message: "value is required"}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Message: "invalid value", Cause: err}
	}
	return nil
}

// decodeFieldValue converts a JSON value into the Go type the field expects
func decodeFieldValue(field string, raw json.RawMessage) (any, error) {
	var v any
	if err := decodeValue(raw, &v); err != nil {
		return nil, err
	}

	switch field {
	case "technologies", "items":
		switch x := v.(type) {
		case string:
			if field == "technologies" {
				return parsing.SplitTechnologies(x), nil
			}
			return parsing.SplitSkills(x), nil
		case []any:
			out := make([]string, 0, len(x))
			for _, elem := range x {
				s, ok := elem.(string)
				if !ok {
					return nil, &DecodeError{Message: fmt.Sprintf("%s must contain only strings", field)}
				}
				out = append(out, s)
			}
			return out, nil
		case nil:
			return []string{}, nil
		}
	}
	return v, nil
}

func decodeItem(t types.SectionType, raw json.RawMessage, alloc ids.Allocator) (types.Item, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Message: "addItem requires item"}
	}
	// Decode a one-element list so each section type uses its own item shape
	content, err := types.DecodeContent(t, append(append([]byte{'['}, raw...), ']'))
	if err != nil {
		return nil, &DecodeError{Message: "invalid item", Cause: err}
	}
	assignContentIDs(content, alloc)
	items := types.Items(content)
	if len(items) != 1 {
		return nil, &DecodeError{Message: fmt.Sprintf("%s sections do not hold items", t)}
	}
	return items[0], nil
}

// assignContentIDs fills in missing ids in place. It only touches freshly decoded values.
func assignContentIDs(c types.Content, alloc ids.Allocator) {
	switch list := c.(type) {
	case types.ExperienceList:
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = alloc.Allocate()
			}
			for j := range list[i].Projects {
				if list[i].Projects[j].ID == "" {
					list[i].Projects[j].ID = alloc.Allocate()
				}
			}
		}
	case types.EducationList:
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = alloc.Allocate()
			}
		}
	case types.ProjectList:
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = alloc.Allocate()
			}
		}
	case types.SkillList:
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = alloc.Allocate()
			}
		}
	}
}
