package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"kanban/internal/kanban/due"
	"kanban/internal/kanban/models"
)

func printBoard(w io.Writer, board models.Board, visible models.Board, at time.Time) {
	fmt.Fprintf(w, "%s\n", board.Name)
	if sum := due.Summarize(board, at); sum != (due.Summary{}) {
		fmt.Fprintf(w, "%d overdue, %d acknowledged, %d due soon\n", sum.Overdue, sum.Acknowledged, sum.DueSoon)
	}

	for _, col := range visible.Columns {
		fmt.Fprintf(w, "\n## %s (%d) [%s]\n", col.Name, len(col.Cards), col.ID)
		for _, card := range col.Cards {
			printCard(w, board, card, at)
		}
	}
}

func printCard(w io.Writer, board models.Board, card models.Card, at time.Time) {
	fmt.Fprintf(w, "  [%s] %s (%s)\n", card.ID, card.Title, card.Priority)

	var meta []string
	for _, tag := range board.ResolveTags(card) {
		meta = append(meta, "#"+tag.Name)
	}
	if card.DueDate != nil {
		d := "due " + card.DueDate.String()
		if label := due.ClassifyCard(card, at).Label(); label != "" {
			d += " (" + label + ")"
		}
		meta = append(meta, d)
	}
	if preview := card.Preview(60); preview != "" {
		meta = append(meta, preview)
	}
	if len(meta) > 0 {
		fmt.Fprintf(w, "        %s\n", strings.Join(meta, "  "))
	}
}
