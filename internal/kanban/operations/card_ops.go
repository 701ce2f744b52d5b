package operations

import (
	"fmt"

	"kanban/internal/kanban/models"
)

// AddCard creates a card from draft at the end of the column's card list.
// The card gets a fresh id and CreatedAt; a missing priority becomes medium.
func AddCard(board models.Board, columnID string, draft models.Card) (models.Board, models.Card, error) {
	idx := board.ColumnIndex(columnID)
	if idx < 0 {
		return board, models.Card{}, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}

	card := draft.Clone()
	card.ID = newID("card", cardTaken(board))
	card.CreatedAt = now()
	if card.Priority == "" {
		card.Priority = models.PriorityMedium
	}

	col := board.Columns[idx]
	col.Cards = insertAt(col.Cards, len(col.Cards), card)

	out := board
	out.Columns = replaceAt(board.Columns, idx, col)
	return out, card, nil
}

// UpdateCard replaces the card with the same id, wherever it lives
func UpdateCard(board models.Board, card models.Card) (models.Board, error) {
	return mapCard(board, card.ID, func(models.Card) models.Card {
		return card.Clone()
	})
}

// DeleteCard removes the card from whichever column holds it
func DeleteCard(board models.Board, cardID string) (models.Board, error) {
	ci, j := board.FindCard(cardID)
	if ci < 0 {
		return board, fmt.Errorf("card %q: %w", cardID, ErrNotFound)
	}

	col := board.Columns[ci]
	col.Cards = removeAt(col.Cards, j)

	out := board
	out.Columns = replaceAt(board.Columns, ci, col)
	return out, nil
}

// MoveCard relocates a card to newIndex in the destination column. Moving
// within one column is a reorder. newIndex is clamped to the valid range.
// The board is returned unchanged if either column is missing or the card
// is not in fromColumnID.
func MoveCard(board models.Board, cardID, fromColumnID, toColumnID string, newIndex int) (models.Board, error) {
	fromIdx := board.ColumnIndex(fromColumnID)
	if fromIdx < 0 {
		return board, fmt.Errorf("source column %q: %w", fromColumnID, ErrNotFound)
	}
	toIdx := board.ColumnIndex(toColumnID)
	if toIdx < 0 {
		return board, fmt.Errorf("destination column %q: %w", toColumnID, ErrNotFound)
	}

	fromCol := board.Columns[fromIdx]
	cardIdx := fromCol.CardIndex(cardID)
	if cardIdx < 0 {
		return board, fmt.Errorf("card %q in column %q: %w", cardID, fromColumnID, ErrNotFound)
	}
	card := fromCol.Cards[cardIdx]

	columns := append([]models.Column(nil), board.Columns...)

	remaining := removeAt(fromCol.Cards, cardIdx)
	if fromIdx == toIdx {
		newIndex = clamp(newIndex, 0, len(remaining))
		fromCol.Cards = insertAt(remaining, newIndex, card)
		columns[fromIdx] = fromCol
	} else {
		fromCol.Cards = remaining
		columns[fromIdx] = fromCol

		toCol := board.Columns[toIdx]
		newIndex = clamp(newIndex, 0, len(toCol.Cards))
		toCol.Cards = insertAt(toCol.Cards, newIndex, card)
		columns[toIdx] = toCol
	}

	out := board
	out.Columns = columns
	return out, nil
}

// SetCardTags replaces the card's tag references, dropping duplicates
func SetCardTags(board models.Board, cardID string, tagIDs []string) (models.Board, error) {
	return mapCard(board, cardID, func(c models.Card) models.Card {
		c.Tags = dedupe(tagIDs)
		return c
	})
}

// AcknowledgeOverdue marks the card's overdue state as seen
func AcknowledgeOverdue(board models.Board, cardID string) (models.Board, error) {
	return mapCard(board, cardID, func(c models.Card) models.Card {
		c.OverdueAcknowledged = true
		return c
	})
}

// ExtendDueDate sets a new due date and clears the overdue acknowledgment
func ExtendDueDate(board models.Board, cardID string, newDueDate models.DueDate) (models.Board, error) {
	return mapCard(board, cardID, func(c models.Card) models.Card {
		d := newDueDate
		c.DueDate = &d
		c.OverdueAcknowledged = false
		return c
	})
}

// WithDueDate returns card with its due date set to d, nil clearing it.
// Changing the date clears the overdue acknowledgment.
func WithDueDate(card models.Card, d *models.DueDate) models.Card {
	if sameDue(card.DueDate, d) {
		return card
	}
	if d != nil {
		v := *d
		d = &v
	}
	card.DueDate = d
	card.OverdueAcknowledged = false
	return card
}

func sameDue(a, b *models.DueDate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.DateOnly == b.DateOnly && a.Time.Equal(b.Time)
}

// mapCard replaces the card with id cardID by fn(card)
func mapCard(board models.Board, cardID string, fn func(models.Card) models.Card) (models.Board, error) {
	ci, j := board.FindCard(cardID)
	if ci < 0 {
		return board, fmt.Errorf("card %q: %w", cardID, ErrNotFound)
	}

	col := board.Columns[ci]
	col.Cards = replaceAt(col.Cards, j, fn(col.Cards[j]))

	out := board
	out.Columns = replaceAt(board.Columns, ci, col)
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
