package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pancakes/internal/pancakes"
	"pancakes/internal/ui"
)

// optionCount is the size of each screen's radio group.
const optionCount = 3

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Pick key.Binding
	Next key.Binding
	Back key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pick, k.Next, k.Back}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newKeyMap(c Color) keyMap {
	km := keyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Pick: key.NewBinding(key.WithKeys("x", "1", "2", "3"), key.WithHelp("x/1-3", "check")),
		Next: key.NewBinding(key.WithKeys("enter", "n")),
		Back: key.NewBinding(key.WithKeys("b"), key.WithHelp("b/esc", "back")),
	}
	if next, ok := c.Next(); ok {
		km.Next.SetHelp("enter", "go to "+next.String())
	} else {
		km.Next.SetEnabled(false)
	}
	return km
}

// Screen is a coloured page with a radio group. While it is on top it listens
// for the next stack change: a push over it saves the checked option into its
// slice. It stops listening after that one event or when it loses the top.
type Screen struct {
	slice   *ColorSlice
	keys    keyMap
	help    help.Model
	cursor  int
	checked *int

	stack *pancakes.Pancakes
	sub   *pancakes.Subscription
}

var (
	_ ui.View       = (*Screen)(nil)
	_ ui.Focusable  = (*Screen)(nil)
	_ ui.Persister  = (*Screen)(nil)
	_ ui.Detachable = (*Screen)(nil)
)

func newScreen(s *ColorSlice) *Screen {
	sc := &Screen{
		slice: s,
		keys:  newKeyMap(s.color),
		help:  help.New(),
	}
	if id := s.Model().CheckedID; id != nil && *id >= 0 && *id < optionCount {
		checked := *id
		sc.checked = &checked
		sc.cursor = checked
	}
	return sc
}

// Checked returns the checked option, if any.
func (s *Screen) Checked() (int, bool) {
	if s.checked == nil {
		return 0, false
	}
	return *s.checked, true
}

// Listening reports whether the screen holds a stack subscription.
func (s *Screen) Listening() bool {
	return s.sub != nil
}

// Init implements ui.View.
func (s *Screen) Init() tea.Cmd {
	return nil
}

// Update implements ui.View.
func (s *Screen) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(km, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, s.keys.Down):
		if s.cursor < optionCount-1 {
			s.cursor++
		}
	case key.Matches(km, s.keys.Pick):
		pick := s.cursor
		if r := km.String(); r >= "1" && r <= "3" {
			pick = int(r[0] - '1')
			s.cursor = pick
		}
		s.checked = &pick
	case key.Matches(km, s.keys.Next):
		next, _ := s.slice.color.Next()
		return s, ui.Push(NewSlice(next), ui.TransitionAuto)
	case key.Matches(km, s.keys.Back):
		return s, ui.Pop(ui.TransitionAuto)
	}
	return s, nil
}

// View implements ui.View.
func (s *Screen) View() string {
	c := s.slice.color
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(c.background()).
		Padding(0, 2).
		Render(c.Title()))
	b.WriteString("\n\n")
	for i := range optionCount {
		cursor := "  "
		if i == s.cursor {
			cursor = ui.Styles.Selected.Render("> ")
		}
		mark := "( )"
		if s.checked != nil && *s.checked == i {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s Option %d", mark, i+1)
		if i == s.cursor {
			line = ui.Styles.Selected.Render(line)
		} else {
			line = ui.Styles.Normal.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.help.ShortHelpView(s.keys.ShortHelp()))
	return b.String()
}

// Focus implements ui.Focusable.
func (s *Screen) Focus(stack *pancakes.Pancakes) {
	s.stack = stack
	if s.sub == nil && stack != nil {
		s.sub = stack.Subscribe(s)
	}
}

// Blur implements ui.Focusable.
func (s *Screen) Blur() {
	s.release()
}

// Detach implements ui.Detachable.
func (s *Screen) Detach() {
	s.release()
}

// Persist implements ui.Persister.
func (s *Screen) Persist() {
	s.slice.SetModel(Model{CheckedID: s.checked})
}

// OnStackChange implements pancakes.Listener.
func (s *Screen) OnStackChange(ev pancakes.StackChangeEvent) {
	if ev.Kind == pancakes.KindPush {
		s.Persist()
	}
	s.release()
}

func (s *Screen) release() {
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}
