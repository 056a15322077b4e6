package slice

import (
	"errors"
	"fmt"
	"sort"

	"pancakes/internal/jsonutil"
)

// ErrUnknownKind is returned when decoding a record whose kind has no factory.
var ErrUnknownKind = errors.New("slice: unknown kind")

// Factory rebuilds a slice from its saved state.
type Factory func(s State) Slice

// Record is the serialized form of one slice.
type Record struct {
	Kind  string `json:"kind"`
	State State  `json:"state,omitempty"`
}

// Registry maps slice kinds to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for kind, replacing any existing one.
func (r *Registry) Register(kind string, f Factory) *Registry {
	r.factories[kind] = f
	return r
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds a slice of the given kind from state.
func (r *Registry) New(kind string, s State) (Slice, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(s), nil
}

// Encode converts slices (bottom to top) to records. Every kind must be registered,
// so whatever is saved can be loaded back.
func (r *Registry) Encode(slices []Slice) ([]Record, error) {
	out := make([]Record, 0, len(slices))
	for i, s := range slices {
		kind := s.Kind()
		if _, ok := r.factories[kind]; !ok {
			return nil, fmt.Errorf("encode slice %d: %w: %q", i, ErrUnknownKind, kind)
		}
		st := s.Restore()
		if jsonutil.IsNull(st) {
			st = nil
		}
		out = append(out, Record{Kind: kind, State: st})
	}
	return out, nil
}

// Decode rebuilds slices from records, preserving order.
func (r *Registry) Decode(records []Record) ([]Slice, error) {
	out := make([]Slice, 0, len(records))
	for i, rec := range records {
		s, err := r.New(rec.Kind, rec.State)
		if err != nil {
			return nil, fmt.Errorf("decode slice %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeJSON decodes a JSON array of records and rebuilds the slices.
func (r *Registry) DecodeJSON(data []byte) ([]Slice, error) {
	records, err := jsonutil.UnmarshalArray[Record](data, "decode slice records")
	if err != nil {
		return nil, err
	}
	return r.Decode(records)
}
