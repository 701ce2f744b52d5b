package operations

import (
	"fmt"

	"kanban/internal/kanban/models"
)

// AddTag appends a tag with a fresh id
func AddTag(board models.Board, draft models.Tag) (models.Board, models.Tag, error) {
	tag := draft
	tag.ID = newID("tag", tagTaken(board))

	out := board
	out.Tags = insertAt(board.Tags, len(board.Tags), tag)
	return out, tag, nil
}

// UpdateTag replaces the tag with the same id
func UpdateTag(board models.Board, tag models.Tag) (models.Board, error) {
	idx := board.TagIndex(tag.ID)
	if idx < 0 {
		return board, fmt.Errorf("tag %q: %w", tag.ID, ErrNotFound)
	}

	out := board
	out.Tags = replaceAt(board.Tags, idx, tag)
	return out, nil
}

// DeleteTag removes the tag and strips its id from every card
func DeleteTag(board models.Board, tagID string) (models.Board, error) {
	idx := board.TagIndex(tagID)
	if idx < 0 {
		return board, fmt.Errorf("tag %q: %w", tagID, ErrNotFound)
	}

	columns := make([]models.Column, len(board.Columns))
	for i, col := range board.Columns {
		columns[i] = col
		if !columnReferencesTag(col, tagID) {
			continue
		}
		cards := make([]models.Card, len(col.Cards))
		for j, card := range col.Cards {
			if card.HasTag(tagID) {
				card.Tags = withoutTag(card.Tags, tagID)
			}
			cards[j] = card
		}
		columns[i].Cards = cards
	}

	out := board
	out.Tags = removeAt(board.Tags, idx)
	out.Columns = columns
	return out, nil
}

func columnReferencesTag(col models.Column, tagID string) bool {
	for _, card := range col.Cards {
		if card.HasTag(tagID) {
			return true
		}
	}
	return false
}

func withoutTag(tags []string, tagID string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tagID {
			out = append(out, t)
		}
	}
	return out
}
