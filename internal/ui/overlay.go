package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack holds modal views drawn over the frame. The topmost overlay
// receives key input before the global keybinds and the top screen.
type OverlayStack struct {
	views []View
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(v View) {
	s.views = append(s.views, v)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (View, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	top := s.views[len(s.views)-1]
	s.views = s.views[:len(s.views)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	return s.views[len(s.views)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.views)
}

// Reset drops every overlay.
func (s *OverlayStack) Reset() {
	s.views = nil
}

// UpdateTop passes msg to the top overlay and replaces it with the result.
// The bool is false when there is no overlay.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	i := len(s.views) - 1
	v, cmd := s.views[i].Update(msg)
	s.views[i] = v
	return cmd, true
}
