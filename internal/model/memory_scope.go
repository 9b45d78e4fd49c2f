package model

import "fmt"

// MemoryScope declares whether an agent invocation may touch conversation history.
// There is deliberately no read-only value.
type MemoryScope int

const (
	// MemoryNone sees only the current input and never reads or writes history.
	MemoryNone MemoryScope = iota
	// MemoryFull reads the conversation history and appends exactly one Turn.
	MemoryFull
)

func (s MemoryScope) String() string {
	switch s {
	case MemoryNone:
		return "none"
	case MemoryFull:
		return "full"
	default:
		return fmt.Sprintf("MemoryScope(%d)", int(s))
	}
}

// Valid reports whether s is one of the declared scopes.
func (s MemoryScope) Valid() bool {
	return s == MemoryNone || s == MemoryFull
}
