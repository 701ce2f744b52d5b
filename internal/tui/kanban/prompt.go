package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptKind says what an accepted prompt value is applied to
type promptKind int

const (
	promptNewCard promptKind = iota
	promptNewColumn
	promptEditTitle
	promptRenameColumn
	promptDueDate
	promptExtendDate
)

// PromptModel is a single-line text input with validation
type PromptModel struct {
	kind      promptKind
	title     string
	input     textinput.Model
	validate  func(string) (string, error)
	err       string
	value     string
	confirmed bool
	width     int
	height    int
}

// NewPromptModel creates a focused prompt. validate normalizes the value
// and may reject it; the prompt stays open until a valid value is entered.
func NewPromptModel(kind promptKind, title, initial, placeholder string, validate func(string) (string, error)) PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return PromptModel{
		kind:     kind,
		title:    title,
		input:    ti,
		validate: validate,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update returns true once the prompt is closed
func (m PromptModel) Update(msg tea.KeyMsg) (PromptModel, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		if m.validate != nil {
			v, err := m.validate(value)
			if err != nil {
				m.err = err.Error()
				return m, nil, false
			}
			value = v
		}
		m.value = value
		m.confirmed = true
		return m, nil, true

	case "esc":
		return m, nil, true
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = ""
	return m, cmd, false
}

func (m PromptModel) View() string {
	var s strings.Builder

	s.WriteString(modalTitleStyle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(promptLabelStyle.Render("> "))
	s.WriteString(m.input.View())
	s.WriteString("\n")
	if m.err != "" {
		s.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	s.WriteString(helpStyle.Render("enter: save • esc: cancel"))

	box := modalBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Value is the accepted, normalized value
func (m PromptModel) Value() string {
	return m.value
}

// Confirmed reports whether a value was accepted
func (m PromptModel) Confirmed() bool {
	return m.confirmed
}
