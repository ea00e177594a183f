package navigator

import (
	"fmt"

	"github.com/google/uuid"
)

// Node is the type-erased handle to a scope, used to nest scopes of
// different value types and to drive tree-wide pop requests. Only Scope
// implements it.
type Node interface {
	anyScope

	// Identity returns the scope's identity (persistence key).
	Identity() string
	// IsActive reports whether the scope is eligible for pops: enabled,
	// topmost, and every ancestor active.
	IsActive() bool
	// CanPop reports whether this scope alone has more than one page.
	CanPop() bool
	// TreeCanPop reports whether this scope or any active descendant can pop.
	TreeCanPop() bool
	// Pop resolves one pop request across the subtree rooted here, deepest
	// active scope first. Returns false when nothing popped.
	Pop() bool
	// PopLocal attempts to pop this scope only.
	PopLocal() bool
	// SetEnabled toggles the manual pop-eligibility kill switch.
	SetEnabled(enabled bool)
	// SetTopmost records whether the host currently presents this scope on
	// top; an occluded scope leaves its parent's child set without being
	// destroyed.
	SetTopmost(topmost bool)
	// Dispose unmounts the scope: deregisters from the parent and releases
	// the source subscription. Persisted history is kept for later
	// restoration under the same identity.
	Dispose()
	// OnEvent registers a listener for this scope's events and those of
	// every descendant.
	OnEvent(fn EventListener) (cancel func())
	// Scheduler returns the tree's deferred task queue.
	Scheduler() *Scheduler
	// CanPopFlag returns the tree-wide observable can-pop flag.
	CanPopFlag() *Flag
}

type scopeState int

const (
	stateInitializing scopeState = iota
	stateMounted
	stateDisposed
)

// Page describes one renderable page derived from a history entry. The host
// renders pages in order with only the last interactive.
type Page[T comparable] struct {
	Value T
	Depth *int
}

// Scope is one navigation scope instance: it owns a HistoryStack derived
// from a ChangeSource and participates in a tree of nested scopes.
type Scope[T comparable] struct {
	node

	source      ChangeSource[T]
	getDepth    func(T) *int
	onPop       func(popped, current T)
	rollback    bool
	mutable     MutableSource[T]
	preserve    bool
	bridge      Bridge
	initial     []HistoryEntry[T]
	stack       *HistoryStack[T]
	unsubscribe func()
	state       scopeState
	identity    string
}

// Option configures a Scope at construction.
type Option[T comparable] func(*Scope[T])

// WithGetDepth supplies the depth-deriving function. It must be
// referentially consistent: the same value must always yield the same depth.
// Without it every entry is pushed at nil depth (append-only history).
func WithGetDepth[T comparable](fn func(T) *int) Option[T] {
	return func(s *Scope[T]) { s.getDepth = fn }
}

// WithOnPop registers a callback invoked after each successful local pop
// with the popped value and the value now current.
func WithOnPop[T comparable](fn func(popped, current T)) Option[T] {
	return func(s *Scope[T]) { s.onPop = fn }
}

// WithIdentity sets a stable identity, required for history preservation
// across remounts. Without it the scope gets an ephemeral identity per
// construction.
func WithIdentity[T comparable](id string) Option[T] {
	return func(s *Scope[T]) { s.identity = id }
}

// WithPreserveHistory marks the scope history-preserving and supplies the
// bridge its stack is saved to and restored from.
func WithPreserveHistory[T comparable](bridge Bridge) Option[T] {
	return func(s *Scope[T]) {
		s.preserve = true
		s.bridge = bridge
	}
}

// WithInitialHistory supplies an explicit starting history, used when no
// usable persisted state exists.
func WithInitialHistory[T comparable](entries []HistoryEntry[T]) Option[T] {
	return func(s *Scope[T]) { s.initial = entries }
}

// WithPopPriority sets the tie-break order among sibling scopes at the same
// tree depth: lower values pop first. Scopes without a priority pop last.
func WithPopPriority[T comparable](p int) Option[T] {
	return func(s *Scope[T]) {
		v := p
		s.popPri = &v
	}
}

// WithSourceRollback makes a pop write the new top value back into the
// source, reverting the externally-owned state. The source must be a
// MutableSource.
func WithSourceRollback[T comparable]() Option[T] {
	return func(s *Scope[T]) { s.rollback = true }
}

// NewScope builds an unmounted scope observing source. Call Mount to attach
// it to the tree (or Mount(nil) to make it a root).
func NewScope[T comparable](source ChangeSource[T], opts ...Option[T]) *Scope[T] {
	if source == nil {
		panic("navigator: NewScope requires a ChangeSource")
	}
	s := &Scope[T]{
		source: source,
		state:  stateInitializing,
	}
	s.node.self = s
	s.node.enabled = true
	s.node.topmost = true
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.rollback {
		m, ok := source.(MutableSource[T])
		if !ok {
			panic("navigator: WithSourceRollback requires a MutableSource")
		}
		s.mutable = m
	}
	if s.preserve && s.identity == "" {
		panic("navigator: WithPreserveHistory requires WithIdentity")
	}
	if s.identity == "" {
		s.identity = uuid.NewString()
	}
	return s
}

// Mount attaches the scope to the tree under parent (nil for the root),
// establishes its history stack, and subscribes to the source. Mounting
// twice is programmer misuse.
func (s *Scope[T]) Mount(parent Node) {
	if s.state != stateInitializing {
		panic(fmt.Sprintf("navigator: Mount on a scope in state %d", s.state))
	}
	if parent != nil {
		s.node.parent = parent
		s.node.scheduler = parent.sched()
		s.node.flag = parent.popFlag()
		if s.node.topmost {
			parent.registerChild(s)
		}
	} else {
		s.node.scheduler = NewScheduler()
		s.node.flag = NewFlag(false)
	}

	s.stack = s.establishStack()
	s.state = stateMounted

	// The live value may have diverged from restored or initial history
	// while the scope was unmounted.
	cur := s.source.Value()
	if !s.stack.PeekTop().sameAs(cur, s.deriveDepth(cur)) {
		s.push(cur)
	}

	s.unsubscribe = s.source.Subscribe(s.onSourceChange)
	s.scheduleRecompute()
}

// establishStack resolves the initial history in priority order: usable
// persisted state, explicit initial history, else a singleton from the
// current source value.
func (s *Scope[T]) establishStack() *HistoryStack[T] {
	if s.preserve && s.bridge != nil {
		if data, ok := s.bridge.ReadState(s.identity); ok {
			if entries, err := DecodeHistory[T](data); err == nil && len(entries) > 0 {
				return newHistoryStack(entries)
			}
			// Malformed or mismatched cache: discard and fall through.
		}
	}
	if len(s.initial) > 0 {
		stack := newHistoryStack(s.initial)
		s.persistEntries(stack.Entries())
		return stack
	}
	cur := s.source.Value()
	return newHistoryStack([]HistoryEntry[T]{NewEntry(cur, s.deriveDepth(cur))})
}

func (s *Scope[T]) deriveDepth(value T) *int {
	if s.getDepth == nil {
		return nil
	}
	return s.getDepth(value)
}

// onSourceChange handles one observed value change: push unless the pair
// matches the current top by both value and depth.
func (s *Scope[T]) onSourceChange(value T) {
	if s.state != stateMounted {
		return
	}
	if s.stack.PeekTop().sameAs(value, s.deriveDepth(value)) {
		return
	}
	s.push(value)
}

func (s *Scope[T]) push(value T) {
	entry := NewEntry(value, s.deriveDepth(value))
	pushed, prev := s.stack.PushEntry(entry)
	s.persistEntries(s.stack.Entries())
	ev := PushEvent{
		Scope:         s.identity,
		PreviousValue: prev.Value,
		PreviousDepth: prev.Depth,
		NewValue:      pushed.Value,
		NewDepth:      pushed.Depth,
	}
	s.node.scheduler.Defer(func() { dispatchUp(s, ev) })
	s.scheduleRecompute()
}

// PopLocal attempts to pop this scope only. It fails when the stack holds a
// single page or the scope is not active. On success the source is rolled
// back (when bound), the OnPop callback runs, and the updated stack is
// persisted.
func (s *Scope[T]) PopLocal() bool {
	if s.state != stateMounted {
		return false
	}
	if s.stack.Len() <= 1 || !s.node.active() {
		return false
	}
	popped := s.stack.PopEntry()
	top := s.stack.PeekTop()
	if s.mutable != nil {
		// Re-entrant notification of the rolled-back value no-ops against
		// the new top.
		s.mutable.Set(top.Value)
	}
	if s.onPop != nil {
		s.onPop(popped.Value, top.Value)
	}
	s.persistEntries(s.stack.Entries())
	ev := PopEvent{
		Scope:         s.identity,
		PreviousValue: popped.Value,
		PreviousDepth: popped.Depth,
		CurrentValue:  top.Value,
		CurrentDepth:  top.Depth,
	}
	s.node.scheduler.Defer(func() { dispatchUp(s, ev) })
	s.scheduleRecompute()
	return true
}

// Pop resolves one pop request across the subtree rooted at this scope.
func (s *Scope[T]) Pop() bool {
	return treePop(s)
}

// CanPop reports whether this scope alone has history to unwind.
func (s *Scope[T]) CanPop() bool {
	return s.state == stateMounted && s.stack.Len() > 1
}

// TreeCanPop reports whether this scope or any active descendant can pop.
func (s *Scope[T]) TreeCanPop() bool {
	return treeCanPop(s)
}

// IsActive reports pop eligibility, re-derived from the live tree.
func (s *Scope[T]) IsActive() bool {
	return s.state == stateMounted && s.node.active()
}

// Identity returns the scope's identity (persistence key).
func (s *Scope[T]) Identity() string {
	return s.identity
}

// History returns a copy of the current stack, oldest first.
func (s *Scope[T]) History() []HistoryEntry[T] {
	return s.stack.Entries()
}

// Pages returns the ordered page descriptors the host should render, one per
// history entry, bottom first.
func (s *Scope[T]) Pages() []Page[T] {
	entries := s.stack.Entries()
	pages := make([]Page[T], len(entries))
	for i, e := range entries {
		pages[i] = Page[T]{Value: e.Value, Depth: e.Depth}
	}
	return pages
}

// Dispose unmounts the scope. Persisted state is deliberately kept so a
// later mount under the same identity restores it.
func (s *Scope[T]) Dispose() {
	if s.state == stateDisposed {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.node.parent != nil {
		departed := s.node.parent
		departed.unregisterChild(s)
		s.node.parent = nil
		// Recompute over the tree this scope just left.
		scheduleRecompute(departed, s.node.scheduler, s.node.flag)
	} else if s.node.flag != nil {
		// Root teardown owns the shared flag's lifecycle.
		s.node.flag.close()
	}
	s.node.children = nil
	s.node.listeners = nil
	s.state = stateDisposed
}

// persistEntries writes the stack through the bridge when the scope is
// history-preserving. Entries that fail to serialize are skipped silently;
// persistence must never fail navigation.
func (s *Scope[T]) persistEntries(entries []HistoryEntry[T]) {
	if !s.preserve || s.bridge == nil {
		return
	}
	data, err := EncodeHistory(entries)
	if err != nil {
		return
	}
	s.bridge.WriteState(s.identity, data)
}

// shallowCanPop and popLocal satisfy the type-erased tree interface.
func (s *Scope[T]) shallowCanPop() bool { return s.CanPop() }
func (s *Scope[T]) popLocal() bool      { return s.PopLocal() }
