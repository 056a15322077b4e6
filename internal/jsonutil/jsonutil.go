// Package jsonutil provides shared helpers for the JSON encoding used by saved
// navigation state: context-wrapped errors and list decoding.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalWithContext marshals v and wraps any error with the provided context message.
func MarshalWithContext(v any, context string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return data, nil
}

// UnmarshalArray unmarshals JSON data into a slice. Empty arrays and JSON null
// yield an empty result; callers decide whether that is an error.
func UnmarshalArray[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}

// IsNull reports whether data is empty or the JSON literal null.
func IsNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}
