package navigator

// ChangeSource is the externally-owned observable value a Scope derives its
// pages from: anything exposing a current value and change notifications.
type ChangeSource[T comparable] interface {
	// Value returns the current value.
	Value() T
	// Subscribe registers fn to be invoked on every value change and
	// returns a cancel func that removes the subscription.
	Subscribe(fn func(T)) (cancel func())
}

// MutableSource is a ChangeSource whose value the navigator may write back,
// used by WithSourceRollback to revert state when a page is popped.
type MutableSource[T comparable] interface {
	ChangeSource[T]
	Set(value T)
}

// ValueNotifier is a minimal mutable observable cell implementing
// MutableSource, for callers that have no observable of their own.
type ValueNotifier[T comparable] struct {
	value   T
	subs    map[int]func(T)
	nextSub int
}

// NewValueNotifier creates a notifier holding initial.
func NewValueNotifier[T comparable](initial T) *ValueNotifier[T] {
	return &ValueNotifier[T]{value: initial, subs: make(map[int]func(T))}
}

// Value returns the current value.
func (n *ValueNotifier[T]) Value() T {
	return n.value
}

// Set updates the value and notifies subscribers. Setting an equal value is
// a no-op and notifies nobody.
func (n *ValueNotifier[T]) Set(value T) {
	if n.value == value {
		return
	}
	n.value = value
	for _, fn := range n.subs {
		fn(value)
	}
}

// Subscribe registers fn for change notifications.
func (n *ValueNotifier[T]) Subscribe(fn func(T)) (cancel func()) {
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

// Map derives a ChangeSource from src via a selector. Subscribers are only
// notified when the mapped value actually changes, so a Scope watching a
// small projection of a larger state is not disturbed by unrelated updates.
func Map[S, T comparable](src ChangeSource[S], fn func(S) T) ChangeSource[T] {
	return &mappedSource[S, T]{src: src, fn: fn}
}

type mappedSource[S, T comparable] struct {
	src ChangeSource[S]
	fn  func(S) T
}

func (m *mappedSource[S, T]) Value() T {
	return m.fn(m.src.Value())
}

func (m *mappedSource[S, T]) Subscribe(fn func(T)) (cancel func()) {
	last := m.Value()
	return m.src.Subscribe(func(s S) {
		v := m.fn(s)
		if v == last {
			return
		}
		last = v
		fn(v)
	})
}
