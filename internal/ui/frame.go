package ui

import (
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"pancakes/internal/ui/textutil"
	"pancakes/internal/view"
)

// Frame is the terminal's view.Container: an ordered stack of layers, the last
// drawn on top. Layout passes are driven by the host, which asks NeedsLayout
// after every update and schedules one when views were added.
type Frame struct {
	// OnTopChange is called whenever the top layer changes, with nil for an
	// empty frame on either side.
	OnTopChange func(from, to *Layer)

	layers      []*Layer
	top         *Layer
	width       int
	height      int
	needsLayout bool
}

var _ view.Container = (*Frame)(nil)

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{}
}

// AddView implements view.Container. v must be a *Layer.
func (f *Frame) AddView(v view.View) {
	f.layers = append(f.layers, asLayer(v))
	f.needsLayout = true
	f.refocus()
}

// RemoveView implements view.Container. Removing a detached view is a no-op.
func (f *Frame) RemoveView(v view.View) {
	i := view.IndexOf(f, v)
	if i < 0 {
		return
	}
	l := f.layers[i]
	f.layers = slices.Delete(f.layers, i, i+1)
	f.refocus()
	detachContent(l)
}

// RemoveAllViews implements view.Container.
func (f *Frame) RemoveAllViews() {
	removed := f.layers
	f.layers = nil
	f.refocus()
	for _, l := range removed {
		detachContent(l)
	}
}

// ChildCount implements view.Container.
func (f *Frame) ChildCount() int {
	return len(f.layers)
}

// ChildAt implements view.Container.
func (f *Frame) ChildAt(i int) view.View {
	return f.layers[i]
}

// BringToFront implements view.Container.
func (f *Frame) BringToFront(v view.View) {
	i := view.IndexOf(f, v)
	if i < 0 || i == len(f.layers)-1 {
		return
	}
	l := f.layers[i]
	f.layers = append(slices.Delete(f.layers, i, i+1), l)
	f.refocus()
}

// Top returns the top layer, or nil.
func (f *Frame) Top() *Layer {
	if len(f.layers) == 0 {
		return nil
	}
	return f.layers[len(f.layers)-1]
}

// Size returns the dimensions of the last layout pass.
func (f *Frame) Size() (w, h int) {
	return f.width, f.height
}

// NeedsLayout reports whether layers were added since the last layout pass.
func (f *Frame) NeedsLayout() bool {
	return f.needsLayout
}

// Layout runs a layout pass at w x h. Layers not laid out yet are marked, then
// their first-layout callbacks run. Returns the number of callbacks run.
func (f *Frame) Layout(w, h int) int {
	f.width, f.height = w, h
	f.needsLayout = false

	var fns []func()
	for _, l := range f.layers {
		fns = append(fns, l.markLaidOut()...)
	}
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// View renders the topmost laid-out layer. A partially revealed layer is
// spliced over the one beneath it.
func (f *Frame) View() string {
	visible := make([]*Layer, 0, len(f.layers))
	for _, l := range f.layers {
		if l.laidOut {
			visible = append(visible, l)
		}
	}
	if len(visible) == 0 {
		return ""
	}

	top := visible[len(visible)-1]
	upper := top.Render(f.width, f.height)
	if top.reveal >= 1 {
		return upper
	}
	var lower string
	if len(visible) > 1 {
		lower = visible[len(visible)-2].Render(f.width, f.height)
	}
	width := f.width
	if width <= 0 {
		width = lipgloss.Width(upper)
	}
	cols := int(math.Round(top.reveal * float64(width)))
	return textutil.Splice(upper, lower, cols)
}

func (f *Frame) refocus() {
	top := f.Top()
	if top == f.top {
		return
	}
	prev := f.top
	f.top = top
	if f.OnTopChange != nil {
		f.OnTopChange(prev, top)
	}
}

func detachContent(l *Layer) {
	if d, ok := l.Content.(Detachable); ok {
		d.Detach()
	}
}

func asLayer(v view.View) *Layer {
	l, ok := v.(*Layer)
	if !ok {
		panic(fmt.Sprintf("ui: frame holds *ui.Layer, got %T", v))
	}
	return l
}
