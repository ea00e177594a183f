package navigator

// Event is a navigation notification dispatched upward through the scope
// tree after a push or pop takes effect. Values are type-erased because
// listeners on ancestor scopes may watch scopes of a different value type.
type Event interface {
	event()
}

// PushEvent is dispatched after a new entry is pushed onto a scope's history.
type PushEvent struct {
	// Scope is the identity of the scope that pushed.
	Scope string
	// PreviousValue and PreviousDepth describe the entry that was on top
	// before the push.
	PreviousValue any
	PreviousDepth *int
	// NewValue and NewDepth describe the entry now on top.
	NewValue any
	NewDepth *int
}

func (PushEvent) event() {}

// PopEvent is dispatched after an entry is popped from a scope's history.
type PopEvent struct {
	// Scope is the identity of the scope that popped.
	Scope string
	// PreviousValue and PreviousDepth describe the popped entry.
	PreviousValue any
	PreviousDepth *int
	// CurrentValue and CurrentDepth describe the entry now on top.
	CurrentValue any
	CurrentDepth *int
}

func (PopEvent) event() {}

// EventListener receives navigation events. Listeners registered on a scope
// see that scope's own events and those of every descendant.
type EventListener func(Event)
