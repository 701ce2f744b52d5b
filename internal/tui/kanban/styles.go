package kanban

import (
	"kanban/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	columnWidth             = 40
	columnPaddingHorizontal = 2
	cardPaddingHorizontal   = 1
	cardBorderWidth         = 1

	// header (title + filter bar + blank), status, margins
	boardHeaderLines = 3
	statusLines      = 3
	marginLines      = 2
	minColumnHeight  = 10
)

// moveHighlight marks the card being carried in move mode
const moveHighlight = lipgloss.Color("54")

// board chrome
var (
	titleStyle           = theme.Title.Padding(0, 1)
	helpStyle            = theme.Muted.Padding(1, 2)
	filterIndicatorStyle = theme.Warn

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).
			Padding(1, columnPaddingHorizontal).
			Width(columnWidth)
	selectedColumnStyle = columnStyle.BorderForeground(theme.BorderFocused)

	columnTitleStyle         = theme.Title.Align(lipgloss.Center)
	selectedColumnTitleStyle = columnTitleStyle.Foreground(theme.Warning).Background(theme.Surface).Underline(true)

	scrollIndicatorStyle = lipgloss.NewStyle().Foreground(theme.Primary).Italic(true).Align(lipgloss.Center)
)

// cards: a left rule whose color tracks selection and due state
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).BorderForeground(theme.Border).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1)
	selectedCardStyle     = cardStyle.BorderForeground(theme.BorderFocused).Background(theme.Surface).Bold(true)
	moveSelectedCardStyle = cardStyle.BorderForeground(theme.Warning).Background(moveHighlight).Bold(true)

	cardTitleStyle   = theme.Title
	cardPreviewStyle = theme.Muted
)

// overlays
var (
	errorStyle   = theme.Error
	warningStyle = theme.Warn
	successStyle = theme.Ok

	modalBoxStyle    = theme.ModalBox.Width(60)
	modalTitleStyle  = theme.ModalTitle.Align(lipgloss.Center)
	promptLabelStyle = theme.Title

	detailBoxStyle = theme.ModalBox.Width(72)
	detailMetaKey  = theme.Muted.Width(10)
)

// pickers
var (
	pickerBoxStyle           = theme.ModalBox.Width(50)
	pickerTitleStyle         = theme.ModalTitle
	pickerItemStyle          = lipgloss.NewStyle().Foreground(theme.Text)
	pickerItemSelectedStyle  = theme.Subtitle
	pickerItemHighlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(theme.Warning)
	pickerCreateNewStyle     = lipgloss.NewStyle().Foreground(theme.Success).Italic(true)
)

// priorityStyle colors the priority badge on a card
func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "high":
		return theme.Error
	case "low":
		return theme.Muted.Bold(true)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	}
}

// modeIndicatorStyle is the badge style for the current input mode
func modeIndicatorStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
