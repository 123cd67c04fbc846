package runctx

import (
	"errors"
	"fmt"

	"foundry.dev/pkg/foundry/internal/engine"
)

// ErrMockKindConflict is returned when a callee already mocked with one
// payload kind is mocked again with the other.
var ErrMockKindConflict = errors.New("callee is already mocked with a different payload kind")

// MockKind tells scalar payloads from vector payloads.
type MockKind int

// Payload kinds.
const (
	MockScalar MockKind = iota
	MockVector
)

func (k MockKind) String() string {
	if k == MockVector {
		return "vector"
	}

	return "scalar"
}

// MockEntry is the substitute result of calls to one callee.
//
// A scalar entry returns Value. A vector entry returns Length cells copied
// from Source at the time of the call.
type MockEntry struct {
	Target engine.Address
	Kind   MockKind
	Value  engine.Value
	Length int
	Source engine.Address
}

// MockTable maps a callee entry offset to its mock.
type MockTable struct {
	entries map[engine.Address]MockEntry
}

// NewMockTable returns an empty table.
func NewMockTable() *MockTable {
	return &MockTable{entries: map[engine.Address]MockEntry{}}
}

// Put registers entry. Re-mocking a callee with the same kind replaces the
// previous entry; switching kinds is rejected.
func (t *MockTable) Put(entry MockEntry) error {
	if prev, ok := t.entries[entry.Target]; ok && prev.Kind != entry.Kind {
		return fmt.Errorf("%w: offset %d is mocked as %s, got %s", ErrMockKindConflict, entry.Target, prev.Kind, entry.Kind)
	}

	t.entries[entry.Target] = entry

	return nil
}

// Lookup returns the mock registered for target.
func (t *MockTable) Lookup(target engine.Address) (MockEntry, bool) {
	entry, ok := t.entries[target]
	return entry, ok
}

// Len returns the number of mocked callees.
func (t *MockTable) Len() int {
	return len(t.entries)
}
