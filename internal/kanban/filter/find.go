package filter

import (
	"strings"

	"kanban/internal/kanban/models"

	"github.com/sahilm/fuzzy"
)

// Match is a card located by FindCards
type Match struct {
	ColumnID  string
	ColIndex  int
	CardIndex int
	Card      models.Card
	Score     int
}

type cardSource struct {
	board models.Board
	refs  []Match
}

func (s cardSource) String(i int) string {
	return cardSearchString(s.board, s.refs[i].Card)
}

func (s cardSource) Len() int {
	return len(s.refs)
}

// cardSearchString builds a single string from card fields for fuzzy matching
func cardSearchString(board models.Board, card models.Card) string {
	parts := []string{card.Title}
	if card.Description != "" {
		parts = append(parts, card.Description)
	}
	for _, tag := range board.ResolveTags(card) {
		parts = append(parts, "#"+tag.Name)
	}
	parts = append(parts, "priority:"+string(card.Priority))
	return strings.Join(parts, " ")
}

// FindCards fuzzy-matches pattern against every card on the board and
// returns the matches best first. Used for quick jumping, not filtering.
func FindCards(board models.Board, pattern string) []Match {
	src := cardSource{board: board}
	for ci, col := range board.Columns {
		for j, card := range col.Cards {
			src.refs = append(src.refs, Match{ColumnID: col.ID, ColIndex: ci, CardIndex: j, Card: card})
		}
	}
	if pattern == "" || src.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(pattern, src)
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = src.refs[m.Index]
		out[i].Score = m.Score
	}
	return out
}
