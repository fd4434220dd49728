package enhance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/types"
)

// Target addresses one text field of the document.
//
//   - SectionID empty: a personal info field
//   - ItemID empty: the text content of a summary or custom section (Field is ignored)
//   - ProjectID set: a field of a project nested in an experience entry
//   - otherwise: a field of a list item
type Target struct {
	SectionID string `json:"sectionId,omitempty"`
	ItemID    string `json:"itemId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Field     string `json:"field,omitempty"`
	// Label is the context label given to the model; derived from the target when empty
	Label string `json:"label,omitempty"`
}

// label returns the context label for the target
func (t Target) label(sectionType types.SectionType) string {
	if t.Label != "" {
		return t.Label
	}
	switch {
	case t.SectionID == "":
		return "personal info " + t.Field
	case t.ItemID == "":
		if sectionType == "" {
			return "section"
		}
		return string(sectionType)
	case t.ProjectID != "":
		return "work project " + t.Field
	case sectionType != "":
		return fmt.Sprintf("%s %s", sectionType, t.Field)
	default:
		return t.Field
	}
}

// Polisher is the part of Enhancer a Dispatcher needs
type Polisher interface {
	Enhance(ctx context.Context, text, label string) string
}

// Dispatcher runs enhancements in the background and applies each result to a
// session as an ordinary command against whatever snapshot is current when the
// result arrives. Targets removed in the meantime resolve to no-ops.
type Dispatcher struct {
	session  *document.Session
	polisher Polisher
	log      logrus.FieldLogger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher for session
func NewDispatcher(session *document.Session, polisher Polisher, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{
		session:  session,
		polisher: polisher,
		log:      log.WithField("component", "dispatcher"),
	}
}

// Go enhances text in the background and writes the result to t. It returns immediately.
// The enhancement outlives ctx cancellation but keeps its values.
func (d *Dispatcher) Go(ctx context.Context, t Target, text string) {
	ctx = context.WithoutCancel(ctx)
	label := t.label(d.sectionType(t.SectionID))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		out := d.polisher.Enhance(ctx, text, label)
		if out == text || strings.TrimSpace(out) == "" {
			return
		}
		d.apply(t, out)
	}()
}

// PolishSection starts an enhancement for every non-empty text field of a section and
// returns how many were started. found is false when the section does not exist.
func (d *Dispatcher) PolishSection(ctx context.Context, sectionID string) (started int, found bool) {
	doc := d.session.Snapshot().Document
	i := doc.FindSection(sectionID)
	if i < 0 {
		return 0, false
	}
	fields := TextFields(doc.Sections[i])
	for _, f := range fields {
		d.Go(ctx, f.Target, f.Text)
	}
	return len(fields), true
}

// Wait blocks until every started enhancement has been applied or dropped
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) sectionType(id string) types.SectionType {
	if id == "" {
		return ""
	}
	doc := d.session.Snapshot().Document
	if i := doc.FindSection(id); i >= 0 {
		return doc.Sections[i].Type
	}
	return ""
}

func (d *Dispatcher) apply(t Target, text string) {
	cmd, ok := d.command(t, text)
	if !ok {
		d.log.WithField("sectionId", t.SectionID).Debug("Enhancement target is gone or holds no text")
		return
	}
	res, err := d.session.Dispatch(cmd)
	if err != nil {
		d.log.WithError(err).WithField("command", cmd.Name()).Warn("Enhancement result rejected")
		return
	}
	d.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"applied": res.Applied,
		"version": res.Version,
	}).Debug("Enhancement result applied")
}

// command builds the edit for t against the current snapshot
func (d *Dispatcher) command(t Target, text string) (document.Command, bool) {
	switch {
	case t.SectionID == "":
		return document.UpdatePersonalInfo{Field: t.Field, Value: text}, true
	case t.ItemID == "":
		var content types.Content
		switch d.sectionType(t.SectionID) {
		case types.SectionSummary:
			content = types.Summary(text)
		case types.SectionCustom:
			content = types.CustomText(text)
		default:
			return nil, false
		}
		return document.ReplaceSectionContent{SectionID: t.SectionID, Content: content}, true
	case t.ProjectID != "":
		return document.UpdateProjectField{SectionID: t.SectionID, ItemID: t.ItemID, ProjectID: t.ProjectID, Field: t.Field, Value: text}, true
	default:
		return document.UpdateItemField{SectionID: t.SectionID, ItemID: t.ItemID, Field: t.Field, Value: text}, true
	}
}

// TextField is one polishable field with its current value
type TextField struct {
	Target Target
	Text   string
}

// TextFields lists the non-empty free-text fields of a section in document order
func TextFields(s types.Section) []TextField {
	var out []TextField
	add := func(t Target, text string) {
		if text != "" {
			out = append(out, TextField{Target: t, Text: text})
		}
	}

	switch c := s.Content.(type) {
	case types.Summary:
		add(Target{SectionID: s.ID}, string(c))
	case types.CustomText:
		add(Target{SectionID: s.ID}, string(c))
	case types.ExperienceList:
		for _, it := range c {
			add(Target{SectionID: s.ID, ItemID: it.ID, Field: types.FieldDescription}, it.Description)
			for _, p := range it.Projects {
				add(Target{SectionID: s.ID, ItemID: it.ID, ProjectID: p.ID, Field: "content"}, p.Content)
				add(Target{SectionID: s.ID, ItemID: it.ID, ProjectID: p.ID, Field: "highlights"}, p.Highlights)
			}
		}
	case types.EducationList:
		for _, it := range c {
			add(Target{SectionID: s.ID, ItemID: it.ID, Field: types.FieldDescription}, it.Description)
		}
	case types.ProjectList:
		for _, it := range c {
			add(Target{SectionID: s.ID, ItemID: it.ID, Field: types.FieldDescription}, it.Description)
		}
	}
	return out
}
