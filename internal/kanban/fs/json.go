package fs

import (
	"errors"
	"fmt"
	"io"
	"time"

	"kanban/internal/kanban/models"
)

var ErrInvalidImport = errors.New("invalid import")

// ExportJSON writes the board in the same form the store persists
func ExportJSON(w io.Writer, board models.Board) error {
	data, err := models.EncodeBoard(board)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ImportJSON reads a board document. Any decode or shape failure is
// reported as ErrInvalidImport and no board is returned.
func ImportJSON(r io.Reader) (models.Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Board{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	board, err := models.DecodeBoard(data)
	if err != nil {
		return models.Board{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return board, nil
}

// ExportFilename is the suggested download name for an export made at now
func ExportFilename(now time.Time) string {
	return "kanban-board-" + now.Format("2006-01-02") + ".json"
}
