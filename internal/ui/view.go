package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the content of one screen; implements Bubble Tea's Init/Update/View.
// Each View represents a screen with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Detachable content is told when its layer leaves the frame.
type Detachable interface {
	Detach()
}
