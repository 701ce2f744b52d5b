package kanban

import (
	"fmt"
	"strings"

	"kanban/internal/kanban/models"
	"kanban/internal/kanban/operations"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExtendPickerModel offers the quick-extend presets for a card's due date
type ExtendPickerModel struct {
	card      models.Card
	cursor    int
	confirmed bool
	custom    bool // user asked to type a date instead
}

func NewExtendPickerModel(card models.Card) ExtendPickerModel {
	m := ExtendPickerModel{card: card}
	for i, opt := range operations.ExtendOptions {
		if opt.Days == 7 {
			m.cursor = i
		}
	}
	return m
}

// Update returns true once the picker is closed
func (m ExtendPickerModel) Update(msg tea.KeyMsg) (ExtendPickerModel, bool) {
	switch k := msg.String(); k {
	case "esc", "q":
		return m, true
	case "enter":
		m.confirmed = true
		return m, true
	case "c":
		m.custom = true
		return m, true
	case "j", "down":
		if m.cursor < len(operations.ExtendOptions)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	default:
		if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(operations.ExtendOptions) {
			m.cursor = int(k[0] - '1')
			m.confirmed = true
			return m, true
		}
	}
	return m, false
}

// NewDue is the due date the highlighted preset produces
func (m ExtendPickerModel) NewDue() models.DueDate {
	return operations.ExtendBy(m.card, operations.ExtendOptions[m.cursor].Days)
}

func (m ExtendPickerModel) View(width, height int) string {
	var s strings.Builder

	s.WriteString(modalTitleStyle.Render("Extend Due Date"))
	s.WriteString("\n\n")
	s.WriteString(pickerItemStyle.Render(m.card.Title))
	s.WriteString("\n")
	if m.card.DueDate != nil {
		s.WriteString(cardPreviewStyle.Render("currently due " + m.card.DueDate.String()))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	for i, opt := range operations.ExtendOptions {
		line := fmt.Sprintf("%d  %-9s %s", i+1, opt.Label, operations.ExtendBy(m.card, opt.Days).String())
		if i == m.cursor {
			s.WriteString(pickerItemHighlightStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString(pickerItemStyle.Render("  "+line) + "\n")
		}
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("1-4: pick • j/k: move • enter: save • c: custom date • esc: cancel"))

	box := modalBoxStyle.Render(s.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
