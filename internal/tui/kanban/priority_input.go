package kanban

import (
	"fmt"
	"strings"

	"kanban/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PriorityInputModel picks one of the three card priorities
type PriorityInputModel struct {
	priority  models.Priority
	confirmed bool
	width     int
	height    int
}

func NewPriorityInputModel(current models.Priority, width, height int) PriorityInputModel {
	if !current.Valid() {
		current = models.PriorityMedium
	}
	return PriorityInputModel{priority: current, width: width, height: height}
}

// Update returns true once the picker is closed
func (m PriorityInputModel) Update(msg tea.KeyMsg) (PriorityInputModel, bool) {
	switch msg.String() {
	case "esc":
		return m, true
	case "enter":
		m.confirmed = true
		return m, true
	case "1", "l":
		m.priority = models.PriorityLow
	case "2", "m":
		m.priority = models.PriorityMedium
	case "3", "h":
		m.priority = models.PriorityHigh
	case "j", "down":
		m.priority = m.step(-1)
	case "k", "up":
		m.priority = m.step(1)
	}
	return m, false
}

func (m PriorityInputModel) step(delta int) models.Priority {
	for i, p := range models.Priorities {
		if p == m.priority {
			j := min(max(i+delta, 0), len(models.Priorities)-1)
			return models.Priorities[j]
		}
	}
	return models.PriorityMedium
}

func (m PriorityInputModel) View() string {
	var s strings.Builder

	s.WriteString(modalTitleStyle.Render("Set Priority"))
	s.WriteString("\n\n")

	for i, p := range models.Priorities {
		marker := "  "
		label := pickerItemStyle.Render(string(p))
		if p == m.priority {
			marker = "> "
			label = priorityStyle(string(p)).Render(string(p))
		}
		s.WriteString(fmt.Sprintf("%s%d %s\n", marker, i+1, label))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("1-3 / l m h: choose • j/k: step • enter: save • esc: cancel"))

	box := modalBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Priority is the chosen priority
func (m PriorityInputModel) Priority() models.Priority {
	return m.priority
}

// Confirmed reports whether the picker was closed with enter
func (m PriorityInputModel) Confirmed() bool {
	return m.confirmed
}
