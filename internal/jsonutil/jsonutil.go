// Package jsonutil provides shared helpers for the JSON persistence layout:
// context-wrapped marshaling errors and tolerant array decoding.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// MarshalWithContext marshals v and wraps any error with the provided
// context message.
func MarshalWithContext(v interface{}, context string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return data, nil
}

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals JSON data into a slice. Empty arrays
// are allowed; the caller decides whether an empty result is usable.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}
