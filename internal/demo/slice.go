package demo

import (
	"pancakes/internal/jsonutil"
	"pancakes/internal/slice"
	"pancakes/internal/ui"
	"pancakes/internal/view"
)

// Model is the state a screen keeps in its slice.
type Model struct {
	CheckedID *int `json:"checked_id,omitempty"`
}

// ColorSlice is the stack entry for one coloured screen.
type ColorSlice struct {
	color Color
	state slice.State
}

var _ slice.Slice = (*ColorSlice)(nil)

// NewSlice creates a slice for c with an empty model.
func NewSlice(c Color) *ColorSlice {
	return &ColorSlice{color: c}
}

// Root returns the first screen.
func Root() slice.Slice {
	return NewSlice(Red)
}

// Color returns the screen this slice describes.
func (s *ColorSlice) Color() Color {
	return s.color
}

// Kind implements slice.Slice.
func (s *ColorSlice) Kind() string {
	return s.color.String()
}

// ToView implements slice.Slice: it builds the screen with its saved model applied.
func (s *ColorSlice) ToView(view.Container) view.View {
	return ui.NewLayer(newScreen(s))
}

// Save implements slice.Slice.
func (s *ColorSlice) Save(st slice.State) {
	s.state = st
}

// Restore implements slice.Slice.
func (s *ColorSlice) Restore() slice.State {
	return s.state
}

// Model decodes the saved model. A missing or unreadable state is the zero model.
func (s *ColorSlice) Model() Model {
	var m Model
	if jsonutil.IsNull(s.state) {
		return m
	}
	if err := jsonutil.UnmarshalWithContext(s.state, &m, s.Kind()+" model"); err != nil {
		return Model{}
	}
	return m
}

// SetModel encodes m into the slice.
func (s *ColorSlice) SetModel(m Model) {
	data, err := jsonutil.MarshalWithContext(m, s.Kind()+" model")
	if err != nil {
		return
	}
	s.Save(data)
}

// Register adds a factory for every colour to r.
func Register(r *slice.Registry) *slice.Registry {
	for _, c := range Colors {
		r.Register(c.String(), func(st slice.State) slice.Slice {
			return &ColorSlice{color: c, state: st}
		})
	}
	return r
}
