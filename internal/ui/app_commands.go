package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pancakes/internal/slice"
)

// Push returns a command that pushes s with the given transition.
func Push(s slice.Slice, t Transition) tea.Cmd {
	return func() tea.Msg {
		return PushMsg{Slice: s, Transition: t}
	}
}

// Pop returns a command that pops the top slice with the given transition.
func Pop(t Transition) tea.Cmd {
	return func() tea.Msg {
		return PopMsg{Transition: t}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// requestLayout defers the layout pass to the next loop iteration, after the
// current update has been rendered.
func requestLayout() tea.Msg {
	return layoutMsg{}
}

// defaultKeybinds returns the App's global bindings.
func defaultKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", msgCmd(QuitMsg{}), "Quit")
	reg.BindWithDesc("ctrl+c", msgCmd(QuitMsg{}), "Quit")
	reg.BindWithDesc("SPC q", msgCmd(QuitMsg{}), "Quit")
	reg.BindWithDesc("SPC s", msgCmd(SaveMsg{}), "Save")
	reg.BindWithDesc("SPC r", msgCmd(ConfirmResetMsg{}), "Reset to root")
	reg.BindWithDesc("SPC t r", msgCmd(SetPushTransitionMsg{Transition: TransitionReveal}), "Reveal")
	reg.BindWithDesc("SPC t p", msgCmd(SetPushTransitionMsg{Transition: TransitionReplace}), "Replace")
	reg.BindWithDesc("SPC t n", msgCmd(SetPushTransitionMsg{Transition: TransitionNone}), "None")
	return reg
}
