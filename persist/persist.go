// Package persist provides ready-made persistence bridges for
// history-preserving navigation scopes. Every type here implements
// navigator.Bridge: an opaque byte store keyed by scope identity. Bridges
// are safe for concurrent use even though the navigation core itself is
// single-threaded, because storage may be shared with other subsystems.
package persist

import "sync"

// MemoryBridge keeps scope state in process memory. State survives scope
// disposal and remount but not process exit; use badgerstore for durability.
type MemoryBridge struct {
	mu    sync.RWMutex
	state map[string][]byte
}

// NewMemoryBridge creates an empty in-memory bridge.
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{state: make(map[string][]byte)}
}

// ReadState returns the bytes stored for identity, or ok=false when absent.
func (b *MemoryBridge) ReadState(identity string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.state[identity]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// WriteState stores data under identity, replacing any prior state.
func (b *MemoryBridge) WriteState(identity string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	b.state[identity] = stored
}

// Delete removes the state for identity, if any.
func (b *MemoryBridge) Delete(identity string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.state, identity)
}

// Len returns the number of stored identities.
func (b *MemoryBridge) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.state)
}
