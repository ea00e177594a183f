package navigator

// Bridge is the persistence collaborator: an opaque byte store keyed by
// scope identity, used to save and restore a history-preserving scope's
// stack across disposal and re-creation. Implementations must tolerate
// absent keys (first mount) and must never block the navigation core; write
// failures are the implementation's own concern to surface (log, metric),
// never the caller's. See the persist package for ready-made bridges.
type Bridge interface {
	// ReadState returns the bytes previously written for identity, or
	// ok=false when nothing (usable) is stored.
	ReadState(identity string) (data []byte, ok bool)
	// WriteState stores data under identity, replacing any prior state.
	WriteState(identity string, data []byte)
}
