package document

import "github.com/jonathan/resume-craft/internal/types"

// Command is an edit applied to a snapshot by Apply
type Command interface {
	// Name returns the wire name of the command
	Name() string
}

// Wire names of the commands
const (
	CmdUpdatePersonalInfo      = "updatePersonalInfo"
	CmdToggleSectionVisibility = "toggleSectionVisibility"
	CmdReplaceSectionContent   = "replaceSectionContent"
	CmdAddItem                 = "addItem"
	CmdRemoveItem              = "removeItem"
	CmdUpdateItemField         = "updateItemField"
	CmdAddProject              = "addProject"
	CmdRemoveProject           = "removeProject"
	CmdUpdateProjectField      = "updateProjectField"
	CmdMoveItem                = "moveItem"
	CmdMoveSection             = "moveSection"
	CmdRenameSection           = "renameSection"
	CmdAddSection              = "addSection"
	CmdRemoveSection           = "removeSection"
	CmdSetTheme                = "setTheme"
)

// UpdatePersonalInfo replaces one field of the header
type UpdatePersonalInfo struct {
	Field string
	Value string
}

// ToggleSectionVisibility flips isVisible on a section
type ToggleSectionVisibility struct {
	SectionID string
}

// ReplaceSectionContent overwrites a section's whole payload. A nil Content clears it.
type ReplaceSectionContent struct {
	SectionID string
	Content   types.Content
}

// AddItem appends an item to a list section. The item id must already be allocated.
type AddItem struct {
	SectionID string
	Item      types.Item
}

// RemoveItem removes the item with the given id
type RemoveItem struct {
	SectionID string
	ItemID    string
}

// UpdateItemField replaces one field of one item
type UpdateItemField struct {
	SectionID string
	ItemID    string
	Field     string
	Value     any
}

// AddProject appends a project to an experience entry
type AddProject struct {
	SectionID string
	ItemID    string
	Project   types.WorkProject
}

// RemoveProject removes a project from an experience entry
type RemoveProject struct {
	SectionID string
	ItemID    string
	ProjectID string
}

// UpdateProjectField replaces one field of one nested project
type UpdateProjectField struct {
	SectionID string
	ItemID    string
	ProjectID string
	Field     string
	Value     any
}

// MoveItem moves an item to NewIndex, clamped to the bounds of the list
type MoveItem struct {
	SectionID string
	ItemID    string
	NewIndex  int
}

// MoveSection moves a section to NewIndex, clamped to the bounds of the document
type MoveSection struct {
	SectionID string
	NewIndex  int
}

// RenameSection sets a section's display title
type RenameSection struct {
	SectionID string
	Title     string
}

// AddSection appends a new section. The section id must already be allocated.
type AddSection struct {
	Section types.Section
}

// RemoveSection deletes a section and its content
type RemoveSection struct {
	SectionID string
}

// SetTheme replaces the non-empty fields of the theme
type SetTheme struct {
	Theme types.Theme
}

func (UpdatePersonalInfo) Name() string { return CmdUpdatePersonalInfo }
func (ToggleSectionVisibility) Name() string { return CmdToggleSectionVisibility }
func (ReplaceSectionContent) Name() string { return CmdReplaceSectionContent }
func (AddItem) Name() string { return CmdAddItem }
func (RemoveItem) Name() string { return CmdRemoveItem }
func (UpdateItemField) Name() string { return CmdUpdateItemField }
func (AddProject) Name() string { return CmdAddProject }
func (RemoveProject) Name() string { return CmdRemoveProject }
func (UpdateProjectField) Name() string { return CmdUpdateProjectField }
func (MoveItem) Name() string { return CmdMoveItem }
func (MoveSection) Name() string { return CmdMoveSection }
func (RenameSection) Name() string { return CmdRenameSection }
func (AddSection) Name() string { return CmdAddSection }
func (RemoveSection) Name() string { return CmdRemoveSection }
func (SetTheme) Name() string { return CmdSetTheme }
