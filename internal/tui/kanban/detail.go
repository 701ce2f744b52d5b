package kanban

import (
	"strings"
	"time"

	"kanban/internal/kanban/due"
	"kanban/internal/kanban/models"
	"kanban/internal/tui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// renderMarkdown renders a card description for the terminal. Rendering
// errors fall back to the raw text.
func renderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// dueLine formats a due date with its status label
func dueLine(card models.Card, at time.Time) string {
	if card.DueDate == nil {
		return ""
	}
	st := due.ClassifyCard(card, at)
	text := "due " + card.DueDate.String()
	if label := st.Label(); label != "" {
		text += " · " + label
	}
	return theme.Due(st).Render(text)
}

// renderDetail renders the full card view
func renderDetail(board models.Board, card models.Card, columnName string, at time.Time, width, height int) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(card.Title))
	s.WriteString("\n\n")

	meta := func(key, value string) {
		s.WriteString(detailMetaKey.Render(key) + value + "\n")
	}
	meta("column", columnName)
	meta("priority", priorityStyle(string(card.Priority)).Render(string(card.Priority)))
	if card.DueDate != nil {
		meta("due", dueLine(card, at))
	}
	if tags := board.ResolveTags(card); len(tags) > 0 {
		names := make([]string, len(tags))
		for i, tag := range tags {
			names[i] = theme.TagColor(tag.Color).Render("#" + tag.Name)
		}
		meta("tags", strings.Join(names, " "))
	}
	if !card.CreatedAt.IsZero() {
		meta("created", card.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	meta("id", theme.Muted.Render(card.ID))

	if body := renderMarkdown(card.Description, 64); body != "" {
		s.WriteString("\n")
		s.WriteString(body)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("e: edit title • a: acknowledge • x: extend • esc/enter: close"))

	box := detailBoxStyle.Render(s.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
