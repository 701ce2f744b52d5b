package operations

import (
	"fmt"

	"kanban/internal/kanban/models"
)

// AddColumn appends a new, empty column to the end of the board.
// The name is taken as given; callers validate it with ValidateColumnName.
func AddColumn(board models.Board, name string) (models.Board, models.Column, error) {
	col := models.Column{
		ID:    newID("column", columnTaken(board)),
		Name:  name,
		Cards: []models.Card{},
	}

	out := board
	out.Columns = insertAt(board.Columns, len(board.Columns), col)
	return out, col, nil
}

// RenameColumn sets the name of an existing column
func RenameColumn(board models.Board, columnID, name string) (models.Board, error) {
	idx := board.ColumnIndex(columnID)
	if idx < 0 {
		return board, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}

	col := board.Columns[idx]
	col.Name = name

	out := board
	out.Columns = replaceAt(board.Columns, idx, col)
	return out, nil
}

// DeleteColumn removes a column together with all of its cards
func DeleteColumn(board models.Board, columnID string) (models.Board, error) {
	idx := board.ColumnIndex(columnID)
	if idx < 0 {
		return board, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}

	out := board
	out.Columns = removeAt(board.Columns, idx)
	return out, nil
}

// MoveColumn moves a column to newIndex, clamped to the valid range.
// The relative order of all other columns is preserved.
func MoveColumn(board models.Board, columnID string, newIndex int) (models.Board, error) {
	idx := board.ColumnIndex(columnID)
	if idx < 0 {
		return board, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}

	column := board.Columns[idx]
	rest := removeAt(board.Columns, idx)
	newIndex = clamp(newIndex, 0, len(rest))

	out := board
	out.Columns = insertAt(rest, newIndex, column)
	return out, nil
}

// ArchiveAllCards discards every card in the column. The column itself stays.
func ArchiveAllCards(board models.Board, columnID string) (models.Board, error) {
	idx := board.ColumnIndex(columnID)
	if idx < 0 {
		return board, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}

	col := board.Columns[idx]
	col.Cards = []models.Card{}

	out := board
	out.Columns = replaceAt(board.Columns, idx, col)
	return out, nil
}
