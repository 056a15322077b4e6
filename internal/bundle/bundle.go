// Package bundle is the host's generic saved-state container: named entries,
// each an independently encoded JSON value.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"

	"pancakes/internal/jsonutil"
)

// ErrMissingKey is returned by Get when no entry exists for the key.
var ErrMissingKey = errors.New("bundle: missing key")

// Bundle maps keys to encoded values.
type Bundle map[string]json.RawMessage

// New creates an empty bundle.
func New() Bundle {
	return make(Bundle)
}

// Put encodes v under key, replacing any existing entry.
func (b Bundle) Put(key string, v any) error {
	data, err := jsonutil.MarshalWithContext(v, "bundle put "+key)
	if err != nil {
		return err
	}
	b[key] = data
	return nil
}

// Get decodes the entry under key into v.
func (b Bundle) Get(key string, v any) error {
	data, ok := b[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return jsonutil.UnmarshalWithContext(data, v, "bundle get "+key)
}

// Raw returns the encoded entry under key.
func (b Bundle) Raw(key string) (json.RawMessage, bool) {
	data, ok := b[key]
	return data, ok
}

// Has reports whether key has an entry.
func (b Bundle) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// Marshal encodes the whole bundle as a JSON object.
func (b Bundle) Marshal() ([]byte, error) {
	return jsonutil.MarshalWithContext(map[string]json.RawMessage(b), "bundle marshal")
}

// Unmarshal decodes a JSON object produced by Marshal.
func Unmarshal(data []byte) (Bundle, error) {
	b := New()
	if err := jsonutil.UnmarshalWithContext(data, &b, "bundle unmarshal"); err != nil {
		return nil, err
	}
	return b, nil
}
