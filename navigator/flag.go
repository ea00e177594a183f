package navigator

// Flag is an observable boolean. The root scope owns one tracking "can any
// scope in the tree pop"; UI elements such as a conditional back button
// subscribe to it instead of polling the tree. It is created when the root
// mounts and torn down when the root is disposed.
type Flag struct {
	value   bool
	subs    map[int]func(bool)
	nextSub int
	closed  bool
}

// NewFlag creates a flag with the given initial value.
func NewFlag(initial bool) *Flag {
	return &Flag{value: initial, subs: make(map[int]func(bool))}
}

// Get returns the current value.
func (f *Flag) Get() bool {
	return f.value
}

// Subscribe registers fn for change notifications and returns a cancel func.
// Subscribing to a closed flag is a no-op.
func (f *Flag) Subscribe(fn func(bool)) (cancel func()) {
	if f.closed {
		return func() {}
	}
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

// set updates the value and notifies subscribers on change. Only the owning
// tree writes the flag, always via full recomputation.
func (f *Flag) set(v bool) {
	if f.closed || f.value == v {
		return
	}
	f.value = v
	for _, fn := range f.subs {
		fn(v)
	}
}

// close drops all subscribers and freezes the flag at false. Called when the
// root scope is disposed.
func (f *Flag) close() {
	f.value = false
	f.subs = nil
	f.closed = true
}
