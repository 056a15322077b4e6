package ui

import (
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pancakes/internal/bundle"
	"pancakes/internal/pancakes"
	"pancakes/internal/slice"
	"pancakes/internal/view"
)

// textView is screen content that records what the host did to it.
type textView struct {
	text     string
	keys     []string
	focused  int
	blurred  int
	detached int
	stack    *pancakes.Pancakes
}

func (v *textView) Init() tea.Cmd { return nil }

func (v *textView) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		v.keys = append(v.keys, k.String())
	}
	return v, nil
}

func (v *textView) View() string { return v.text }

func (v *textView) Focus(stack *pancakes.Pancakes) {
	v.focused++
	v.stack = stack
}

func (v *textView) Blur() { v.blurred++ }

func (v *textView) Detach() { v.detached++ }

func block(ch string, w, h int) string {
	line := strings.Repeat(ch, w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func textLayer(text string) (*Layer, *textView) {
	tv := &textView{text: text}
	return NewLayer(tv), tv
}

// pageSlice is a minimal slice whose view is a textView layer.
type pageSlice struct {
	Name  string `json:"name"`
	views []*textView
}

const pageKind = "page"

func (s *pageSlice) Kind() string { return pageKind }

func (s *pageSlice) ToView(view.Container) view.View {
	tv := &textView{text: s.Name}
	s.views = append(s.views, tv)
	return NewLayer(tv)
}

func (s *pageSlice) Save(slice.State) {}

func (s *pageSlice) Restore() slice.State {
	data, _ := json.Marshal(s)
	return data
}

func pageRegistry() *slice.Registry {
	return slice.NewRegistry().Register(pageKind, func(st slice.State) slice.Slice {
		s := &pageSlice{}
		_ = json.Unmarshal(st, s)
		return s
	})
}

// memStore is an in-memory StateStore.
type memStore struct {
	saved   bundle.Bundle
	saves   int
	cleared int
}

func (m *memStore) Save(b bundle.Bundle) error {
	m.saved = b
	m.saves++
	return nil
}

func (m *memStore) Clear() error {
	m.saved = nil
	m.cleared++
	return nil
}
