// Package ids allocates identifiers for sections, items and nested projects.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Allocator returns identifiers that are distinct from every identifier it returned before.
// One allocator serves sections, items and nested projects alike.
type Allocator interface {
	Allocate() string
}

// UUIDAllocator allocates random (version 4) UUIDs
type UUIDAllocator struct{}

// NewUUIDAllocator creates the default allocator
func NewUUIDAllocator() UUIDAllocator {
	return UUIDAllocator{}
}

// Allocate returns a new UUID string
func (UUIDAllocator) Allocate() string {
	return uuid.NewString()
}

// Sequence allocates prefix-1, prefix-2, ... and is safe for concurrent use.
// It is deterministic, which makes it the allocator of choice for templates and tests.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a sequence allocator with the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Allocate returns the next identifier in the sequence
func (s *Sequence) Allocate() string {
	n := s.next.Add(1)
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// Func adapts a plain function to the Allocator interface
type Func func() string

// Allocate calls f
func (f Func) Allocate() string {
	return f()
}
