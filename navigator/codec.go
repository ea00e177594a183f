package navigator

import (
	"github.com/caseycrogers/implicit-navigator/internal/jsonutil"
)

// wireEntry is the persisted layout of a single history entry: a nullable
// depth and an application-defined serializable value.
type wireEntry[T comparable] struct {
	Depth *int `json:"depth"`
	Value T    `json:"value"`
}

// EncodeHistory serializes entries for storage in a Bridge.
func EncodeHistory[T comparable](entries []HistoryEntry[T]) ([]byte, error) {
	wire := make([]wireEntry[T], len(entries))
	for i, e := range entries {
		wire[i] = wireEntry[T]{Depth: e.Depth, Value: e.Value}
	}
	return jsonutil.MarshalWithContext(wire, "encode history")
}

// DecodeHistory deserializes entries previously written by EncodeHistory.
// Malformed or type-mismatched data returns an error; callers restoring a
// scope treat that as "no cache" and fall back, never fail.
func DecodeHistory[T comparable](data []byte) ([]HistoryEntry[T], error) {
	wire, err := jsonutil.UnmarshalArrayAllowEmpty[wireEntry[T]](data, "decode history")
	if err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry[T], len(wire))
	for i, w := range wire {
		entries[i] = HistoryEntry[T]{Depth: w.Depth, Value: w.Value}
	}
	return entries, nil
}
