package kanban

import (
	"kanban/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmYesStyle = theme.Ok
	confirmNoStyle  = theme.Error
)

// confirmAction is the destructive action waiting for a yes
type confirmAction int

const (
	confirmDeleteCard confirmAction = iota
	confirmArchiveColumn
	confirmDeleteColumn
)

// ConfirmationModal displays a yes/no question
type ConfirmationModal struct {
	action   confirmAction
	targetID string
	message  string
	details  string
}

func NewConfirmationModal(action confirmAction, targetID, message, details string) ConfirmationModal {
	return ConfirmationModal{
		action:   action,
		targetID: targetID,
		message:  message,
		details:  details,
	}
}

// Update returns (answered, confirmed)
func (m ConfirmationModal) Update(msg tea.KeyMsg) (bool, bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", "esc", "q":
		return true, false
	}
	return false, false
}

func (m ConfirmationModal) View(width, height int) string {
	content := warningStyle.Render(m.message) + "\n"
	if m.details != "" {
		content += "\n" + m.details + "\n"
	}
	content += "\n" + confirmYesStyle.Render("[y]") + " Yes  " + confirmNoStyle.Render("[n/esc]") + " No"

	box := modalBoxStyle.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
