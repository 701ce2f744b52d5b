package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBoard is returned when a board document has the wrong shape
var ErrInvalidBoard = errors.New("invalid board")

// ValidateBoard checks the structural invariants of a board: ids present and
// unique within each collection, card titles present, and priorities known.
// Optional fields may be absent and dangling tag references are allowed.
func ValidateBoard(b Board) error {
	if b.Columns == nil {
		return fmt.Errorf("%w: missing columns", ErrInvalidBoard)
	}

	columnIDs := make(map[string]bool, len(b.Columns))
	cardIDs := make(map[string]bool)
	for i, col := range b.Columns {
		if col.ID == "" {
			return fmt.Errorf("%w: column %d has no id", ErrInvalidBoard, i)
		}
		if columnIDs[col.ID] {
			return fmt.Errorf("%w: duplicate column id %q", ErrInvalidBoard, col.ID)
		}
		columnIDs[col.ID] = true

		for j, card := range col.Cards {
			if card.ID == "" {
				return fmt.Errorf("%w: card %d in column %q has no id", ErrInvalidBoard, j, col.ID)
			}
			if cardIDs[card.ID] {
				return fmt.Errorf("%w: duplicate card id %q", ErrInvalidBoard, card.ID)
			}
			cardIDs[card.ID] = true
			if card.Title == "" {
				return fmt.Errorf("%w: card %q has no title", ErrInvalidBoard, card.ID)
			}
			if card.Priority != "" && !card.Priority.Valid() {
				return fmt.Errorf("%w: card %q has unknown priority %q", ErrInvalidBoard, card.ID, card.Priority)
			}
		}
	}

	tagIDs := make(map[string]bool, len(b.Tags))
	for i, tag := range b.Tags {
		if tag.ID == "" {
			return fmt.Errorf("%w: tag %d has no id", ErrInvalidBoard, i)
		}
		if tagIDs[tag.ID] {
			return fmt.Errorf("%w: duplicate tag id %q", ErrInvalidBoard, tag.ID)
		}
		tagIDs[tag.ID] = true
	}

	return nil
}

// IsValidBoard reports whether b passes ValidateBoard
func IsValidBoard(b Board) bool {
	return ValidateBoard(b) == nil
}

// Normalize fills in optional fields omitted by external documents.
// The result shares no slices with b.
func Normalize(b Board) Board {
	out := b.Clone()
	if out.Columns == nil {
		out.Columns = []Column{}
	}
	if out.Tags == nil {
		out.Tags = []Tag{}
	}
	for i := range out.Columns {
		col := &out.Columns[i]
		if col.Cards == nil {
			col.Cards = []Card{}
		}
		for j := range col.Cards {
			card := &col.Cards[j]
			if card.Priority == "" {
				card.Priority = PriorityMedium
			}
			if card.DueDate != nil && card.DueDate.Time.IsZero() {
				card.DueDate = nil
			}
		}
	}
	return out
}

// DecodeBoard parses a JSON board document, validates its shape and
// normalizes optional fields. The document must be an object carrying a
// "columns" array; everything else is optional.
func DecodeBoard(data []byte) (Board, error) {
	var probe struct {
		Columns json.RawMessage `json:"columns"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if len(probe.Columns) == 0 || isJSONNull(probe.Columns) || !bytes.HasPrefix(bytes.TrimSpace(probe.Columns), []byte("[")) {
		return Board{}, fmt.Errorf("%w: columns must be an array", ErrInvalidBoard)
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if err := ValidateBoard(board); err != nil {
		return Board{}, err
	}
	return Normalize(board), nil
}

// EncodeBoard is the canonical serialization used by storage and export
func EncodeBoard(b Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
