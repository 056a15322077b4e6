package demo

import "github.com/charmbracelet/lipgloss"

// Color identifies a demo screen.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

// Colors lists every screen, root first.
var Colors = []Color{Red, Green, Blue}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Title is the screen heading.
func (c Color) Title() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "?"
	}
}

// Next returns the screen this one pushes, or false for the last screen.
func (c Color) Next() (Color, bool) {
	switch c {
	case Red:
		return Green, true
	case Green:
		return Blue, true
	default:
		return 0, false
	}
}

func (c Color) background() lipgloss.Color {
	switch c {
	case Red:
		return lipgloss.Color("124")
	case Green:
		return lipgloss.Color("28")
	default:
		return lipgloss.Color("25")
	}
}
