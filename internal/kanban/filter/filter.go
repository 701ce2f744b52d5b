// Package filter derives display-only projections of a board.
package filter

import (
	"strings"

	"kanban/internal/kanban/models"
)

// PriorityAll matches cards of every priority
const PriorityAll models.Priority = "all"

// Query selects the cards shown on the board
type Query struct {
	SearchText string
	TagIDs     []string
	Priority   models.Priority // PriorityAll or "" disables the priority filter
}

// IsEmpty reports whether the query lets every card through
func (q Query) IsEmpty() bool {
	return q.SearchText == "" && len(q.TagIDs) == 0 && (q.Priority == "" || q.Priority == PriorityAll)
}

// HasTag reports whether tagID is among the selected tags
func (q Query) HasTag(tagID string) bool {
	for _, id := range q.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// ToggleTag returns a copy of q with tagID added to or removed from the selection
func (q Query) ToggleTag(tagID string) Query {
	out := q
	out.TagIDs = nil
	found := false
	for _, id := range q.TagIDs {
		if id == tagID {
			found = true
			continue
		}
		out.TagIDs = append(out.TagIDs, id)
	}
	if !found {
		out.TagIDs = append(out.TagIDs, tagID)
	}
	return out
}

// Match reports whether a card satisfies every clause of the query
func (q Query) Match(card models.Card) bool {
	return q.matchesSearch(card) && q.matchesTags(card) && q.matchesPriority(card)
}

func (q Query) matchesSearch(card models.Card) bool {
	if q.SearchText == "" {
		return true
	}
	needle := strings.ToLower(q.SearchText)
	return strings.Contains(strings.ToLower(card.Title), needle) ||
		strings.Contains(strings.ToLower(card.Description), needle)
}

func (q Query) matchesTags(card models.Card) bool {
	if len(q.TagIDs) == 0 {
		return true
	}
	for _, id := range q.TagIDs {
		if card.HasTag(id) {
			return true
		}
	}
	return false
}

func (q Query) matchesPriority(card models.Card) bool {
	return q.Priority == "" || q.Priority == PriorityAll || card.Priority == q.Priority
}

// FilterBoard returns a board with the same columns whose card lists keep
// only the cards matching q, in their original order. The result is for
// display only and must never be persisted.
func FilterBoard(board models.Board, q Query) models.Board {
	out := board
	out.Columns = make([]models.Column, len(board.Columns))
	for i, col := range board.Columns {
		cards := make([]models.Card, 0, len(col.Cards))
		for _, card := range col.Cards {
			if q.Match(card) {
				cards = append(cards, card)
			}
		}
		col.Cards = cards
		out.Columns[i] = col
	}
	return out
}

// ParsePriority accepts "all" in addition to the card priorities
func ParsePriority(s string) (models.Priority, error) {
	if s == "" || strings.EqualFold(strings.TrimSpace(s), string(PriorityAll)) {
		return PriorityAll, nil
	}
	return models.ParsePriority(s)
}
