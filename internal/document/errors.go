// Package document holds the résumé snapshot and the pure reducers that derive a new
// snapshot from an old one and an edit command.
package document

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-craft/internal/types"
)

// ShapeMismatchError reports a payload whose kind does not match the target section's type.
// The command is rejected and the snapshot is left unchanged.
type ShapeMismatchError struct {
	SectionID string
	Want      types.SectionType
	Got       types.SectionType
	Message   string
}

func (e *ShapeMismatchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("shape mismatch in section %s: %s", e.SectionID, e.Message)
	}
	return fmt.Sprintf("shape mismatch in section %s: want %s, got %s", e.SectionID, e.Want, e.Got)
}

// FieldError reports a field update that names an unknown field or carries a value of the wrong type
type FieldError struct {
	Target string
	Field  string
	Cause  error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("field error: %s.%s: %v", e.Target, e.Field, e.Cause)
	}
	return fmt.Sprintf("field error: %s.%s", e.Target, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

// IdentityError reports an entity whose id is empty or already used in its collection
type IdentityError struct {
	Collection string
	ID         string
	Message    string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity error in %s: %s (id %q)", e.Collection, e.Message, e.ID)
}

// ValidationError lists every invariant a document violates
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid document: %s", strings.Join(e.Problems, "; "))
}
