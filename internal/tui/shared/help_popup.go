package shared

import (
	"strings"

	"kanban/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// HelpBind is one key and what it does
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection groups related bindings under a heading
type HelpSection struct {
	Title string
	Binds []HelpBind
}

const helpKeyWidth = 12

var (
	helpSectionStyle = theme.Subtitle
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(helpKeyWidth)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpBoxStyle     = theme.ModalBox
)

// RenderHelpPopup renders the sections in two columns inside a centered box
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	half := (len(sections) + 1) / 2
	left := renderSections(sections[:half])
	right := renderSections(sections[half:])

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	content := body + "\n\n" + theme.Muted.Render("press any key to close")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpBoxStyle.Render(content))
}

func renderSections(sections []HelpSection) string {
	var s strings.Builder
	for i, section := range sections {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(helpSectionStyle.Render(section.Title))
		s.WriteString("\n")
		for _, bind := range section.Binds {
			s.WriteString(helpKeyStyle.Render(bind.Key) + helpDescStyle.Render(bind.Desc) + "\n")
		}
	}
	return strings.TrimRight(s.String(), "\n")
}
