package cli

import (
	"fmt"
	"strings"

	"kanban/internal/kanban/models"
)

// resolveCard finds a card by exact id or by an unambiguous id prefix of at
// least four characters
func resolveCard(board models.Board, ref string) (models.Card, string, error) {
	if card, colID, ok := board.CardByID(ref); ok {
		return card, colID, nil
	}

	var matches []models.Card
	var cols []string
	if len(ref) >= 4 {
		for _, col := range board.Columns {
			for _, card := range col.Cards {
				if strings.HasPrefix(card.ID, ref) {
					matches = append(matches, card)
					cols = append(cols, col.ID)
				}
			}
		}
	}

	if len(matches) == 0 {
		return models.Card{}, "", fmt.Errorf("no card found with ID: %s", ref)
	}
	if len(matches) > 1 {
		return models.Card{}, "", fmt.Errorf("multiple cards match ID '%s', please be more specific", ref)
	}
	return matches[0], cols[0], nil
}

// resolveColumn accepts a column id or a case-insensitive column name
func resolveColumn(board models.Board, ref string) (models.Column, error) {
	if col, ok := board.ColumnByID(ref); ok {
		return col, nil
	}
	var found []models.Column
	for _, col := range board.Columns {
		if strings.EqualFold(col.Name, ref) {
			found = append(found, col)
		}
	}
	switch len(found) {
	case 0:
		return models.Column{}, fmt.Errorf("no column found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return models.Column{}, fmt.Errorf("multiple columns named '%s', use the column id", ref)
	}
}

// resolveTag accepts a tag id or a case-insensitive tag name
func resolveTag(board models.Board, ref string) (models.Tag, error) {
	ref = strings.TrimPrefix(ref, "#")
	if tag, ok := board.TagByID(ref); ok {
		return tag, nil
	}
	for _, tag := range board.Tags {
		if strings.EqualFold(tag.Name, ref) {
			return tag, nil
		}
	}
	return models.Tag{}, fmt.Errorf("no tag found: %s", ref)
}

func resolveTags(board models.Board, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		tag, err := resolveTag(board, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
