// Package theme holds the shared palette and styles. Colors stay within
// ANSI 0-15 so the terminal's own scheme applies, except Surface.
package theme

import (
	"kanban/internal/kanban/due"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Text      = lipgloss.Color("7")
	TextMuted = lipgloss.Color("8")

	Primary   = lipgloss.Color("4")
	Secondary = lipgloss.Color("6")
	Success   = lipgloss.Color("2")
	Warning   = lipgloss.Color("3")
	Danger    = lipgloss.Color("1")

	Surface       = lipgloss.Color("236")
	Border        = TextMuted
	BorderFocused = Primary
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	HelpHint = Muted

	Error = bold(Danger)
	Warn  = bold(Warning)
	Ok    = bold(Success)

	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)
	ModalTitle = bold(Warning)

	StatusBar = Muted.
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)
)

// due-date text
var (
	overdue      = bold(Danger)
	acknowledged = lipgloss.NewStyle().Italic(true).Foreground(TextMuted)
	dueSoon      = bold(Warning)
	dueLater     = lipgloss.NewStyle().Foreground(Success)
)

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// Due returns the text style for a due-date status.
func Due(st due.Status) lipgloss.Style {
	switch st.Kind {
	case due.Overdue:
		if st.Acknowledged {
			return acknowledged
		}
		return overdue
	case due.DueSoon:
		return dueSoon
	}
	return dueLater
}

// DueBorder returns the card border color that flags a pending due date.
// Acknowledged and distant dates get no highlight.
func DueBorder(st due.Status) (lipgloss.Color, bool) {
	switch {
	case st.Kind == due.Overdue && !st.Acknowledged:
		return Danger, true
	case st.Kind == due.DueSoon:
		return Warning, true
	}
	return "", false
}

// TagColor returns a foreground style for a tag's hex color
func TagColor(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Italic(true)
}
