package ui

import (
	"github.com/charmbracelet/lipgloss"

	"pancakes/internal/view"
)

// Layer is one stacked screen in a Frame. It wraps a View and tracks how much of
// it is revealed: 1 draws it fully, 0 lets the layer beneath show through.
type Layer struct {
	Content View

	reveal   float64
	laidOut  bool
	onLayout []func()
}

var _ view.View = (*Layer)(nil)

// NewLayer wraps content in a fully revealed layer.
func NewLayer(content View) *Layer {
	return &Layer{Content: content, reveal: 1}
}

// OnFirstLayout implements view.View.
func (l *Layer) OnFirstLayout(fn func()) {
	if l.laidOut {
		fn()
		return
	}
	l.onLayout = append(l.onLayout, fn)
}

// LaidOut reports whether the layer has been through a layout pass.
func (l *Layer) LaidOut() bool {
	return l.laidOut
}

// Reveal returns the revealed fraction in [0, 1].
func (l *Layer) Reveal() float64 {
	return l.reveal
}

// SetReveal sets the revealed fraction, clamped to [0, 1].
func (l *Layer) SetReveal(f float64) {
	l.reveal = min(max(f, 0), 1)
}

// Render draws the content padded and clipped to w x h. Zero dimensions leave
// that axis unconstrained.
func (l *Layer) Render(w, h int) string {
	if l.Content == nil {
		return ""
	}
	style := lipgloss.NewStyle()
	if w > 0 {
		style = style.Width(w).MaxWidth(w)
	}
	if h > 0 {
		style = style.Height(h).MaxHeight(h)
	}
	return style.Render(l.Content.View())
}

// markLaidOut flags the layer and hands back its pending callbacks.
func (l *Layer) markLaidOut() []func() {
	if l.laidOut {
		return nil
	}
	l.laidOut = true
	fns := l.onLayout
	l.onLayout = nil
	return fns
}
