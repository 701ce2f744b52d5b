package kanban

import (
	"strings"

	"kanban/internal/kanban/filter"
	"kanban/internal/kanban/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const finderMaxResults = 10

// FinderModel fuzzy-searches every card on the board and jumps to one
type FinderModel struct {
	input   textinput.Model
	board   models.Board
	find    func(string) []filter.Match
	matches []filter.Match
	cursor  int
	chosen  *filter.Match
}

func NewFinderModel(board models.Board, find func(string) []filter.Match) FinderModel {
	ti := textinput.New()
	ti.Placeholder = "jump to card..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()
	return FinderModel{input: ti, board: board, find: find}
}

// Update returns true once the finder is closed
func (m FinderModel) Update(msg tea.KeyMsg) (FinderModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		return m, nil, true
	case "enter":
		if m.cursor < len(m.matches) {
			match := m.matches[m.cursor]
			m.chosen = &match
		}
		return m, nil, true
	case "down", "ctrl+n", "ctrl+j":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil, false
	case "up", "ctrl+p", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil, false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.matches = nil
	if q := strings.TrimSpace(m.input.Value()); q != "" {
		m.matches = m.find(q)
		if len(m.matches) > finderMaxResults {
			m.matches = m.matches[:finderMaxResults]
		}
	}
	m.cursor = 0
	return m, cmd, false
}

// Chosen is the selected match, or nil if the finder was cancelled
func (m FinderModel) Chosen() *filter.Match {
	return m.chosen
}

func (m FinderModel) View(width, height int) string {
	var s strings.Builder

	s.WriteString(modalTitleStyle.Render("Find Card"))
	s.WriteString("\n\n")
	s.WriteString(promptLabelStyle.Render("> "))
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	if m.input.Value() != "" && len(m.matches) == 0 {
		s.WriteString(cardPreviewStyle.Render("no matches") + "\n")
	}
	for i, match := range m.matches {
		col := ""
		if match.ColIndex < len(m.board.Columns) {
			col = m.board.Columns[match.ColIndex].Name
		}
		line := truncate(match.Card.Title, 40) + "  " + cardPreviewStyle.Render(col)
		if i == m.cursor {
			s.WriteString(pickerItemHighlightStyle.Render("> "+truncate(match.Card.Title, 40)) + "  " + cardPreviewStyle.Render(col) + "\n")
			continue
		}
		s.WriteString("  " + line + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("type to search • ↑/↓: move • enter: jump • esc: cancel"))

	box := modalBoxStyle.Render(s.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// truncate shortens s to n runes with a trailing ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
