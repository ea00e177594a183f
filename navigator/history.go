package navigator

import "fmt"

// HistoryEntry is one page in a scope's history: a value plus the optional
// navigation depth it was pushed at. Entries are immutable once created.
type HistoryEntry[T comparable] struct {
	Value T
	Depth *int
}

// NewEntry builds a HistoryEntry. Pass nil depth for a leaf page that is
// always appended and never collapses earlier history.
func NewEntry[T comparable](value T, depth *int) HistoryEntry[T] {
	return HistoryEntry[T]{Value: value, Depth: depth}
}

// Depth returns a pointer to d, for use as an entry depth literal.
func Depth(d int) *int {
	return &d
}

// HasDepth reports whether the entry carries a depth.
func (e HistoryEntry[T]) HasDepth() bool {
	return e.Depth != nil
}

// sameAs reports whether the entry matches the given value AND depth. Both
// must match for a pending push to be treated as a no-op.
func (e HistoryEntry[T]) sameAs(value T, depth *int) bool {
	return e.Value == value && depthEqual(e.Depth, depth)
}

func depthEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// HistoryStack is the non-empty ordered page history for a single scope.
// It is mutated only by PushEntry and PopEntry; entries are never reordered.
type HistoryStack[T comparable] struct {
	entries []HistoryEntry[T]
}

// newHistoryStack builds a stack from the given entries. Entries are copied.
func newHistoryStack[T comparable](entries []HistoryEntry[T]) *HistoryStack[T] {
	s := &HistoryStack[T]{entries: make([]HistoryEntry[T], len(entries))}
	copy(s.entries, entries)
	return s
}

// PushEntry appends entry, first removing every earlier entry whose depth is
// nil or >= entry's depth when entry has one. A nil-depth entry never
// truncates. The stack can never end up empty: the pushed entry always
// remains. Returns the pushed entry and the previous top (the zero entry if
// the stack was empty).
func (s *HistoryStack[T]) PushEntry(entry HistoryEntry[T]) (pushed, prev HistoryEntry[T]) {
	if len(s.entries) == 0 {
		s.entries = append(s.entries, entry)
		return entry, HistoryEntry[T]{}
	}
	prev = s.entries[len(s.entries)-1]
	if entry.Depth != nil {
		kept := s.entries[:0]
		for _, e := range s.entries {
			if e.Depth != nil && *e.Depth < *entry.Depth {
				kept = append(kept, e)
			}
		}
		s.entries = kept
	}
	s.entries = append(s.entries, entry)
	return entry, prev
}

// PopEntry removes and returns the top entry. The caller must guard with
// Len() > 1; popping the last remaining entry is programmer misuse.
func (s *HistoryStack[T]) PopEntry() HistoryEntry[T] {
	if len(s.entries) <= 1 {
		panic(fmt.Sprintf("navigator: PopEntry on a stack of length %d", len(s.entries)))
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

// PeekTop returns the current top entry. The stack is never empty once a
// scope is mounted, so PeekTop is always defined.
func (s *HistoryStack[T]) PeekTop() HistoryEntry[T] {
	if len(s.entries) == 0 {
		panic("navigator: PeekTop on an empty stack")
	}
	return s.entries[len(s.entries)-1]
}

// Len returns the number of entries.
func (s *HistoryStack[T]) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stack, oldest first.
func (s *HistoryStack[T]) Entries() []HistoryEntry[T] {
	out := make([]HistoryEntry[T], len(s.entries))
	copy(out, s.entries)
	return out
}
