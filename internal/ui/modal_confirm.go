package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModalStyles contains shared style definitions for modals.
var ModalStyles = struct {
	BoxWarning   lipgloss.Style // red border
	TitleWarning lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style
}{
	BoxWarning: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Label: lipgloss.NewStyle(),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

// ConfirmModal asks a yes/no question. Enter or y confirms; Esc or n cancels.
// Either way the modal asks to be dismissed.
type ConfirmModal struct {
	Title     string
	Label     string
	OnConfirm func() tea.Msg
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
	}
}

// NewResetConfirmModal asks before dropping every screen above the root.
func NewResetConfirmModal(depth int) *ConfirmModal {
	label := "The stack is already at the root."
	switch dropped := depth - 1; {
	case dropped == 1:
		label = "1 screen will be dropped."
	case dropped > 1:
		label = fmt.Sprintf("%d screens will be dropped.", dropped)
	}
	return NewConfirmModal("Reset to root?", label, func() tea.Msg { return ResetMsg{} })
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "n":
		return m, msgCmd(DismissModalMsg{})
	case "enter", "y":
		if m.OnConfirm == nil {
			return m, msgCmd(DismissModalMsg{})
		}
		return m, tea.Batch(msgCmd(DismissModalMsg{}), m.OnConfirm)
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := ModalStyles.TitleWarning.Render(m.Title) + "\n\n"
	content += ModalStyles.Label.Render(m.Label)
	content += "\n\n" + ModalStyles.Help.Render("y/Enter: confirm  Esc: cancel")
	return ModalStyles.BoxWarning.Render(content)
}
