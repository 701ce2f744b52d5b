package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"kanban/internal/kanban/due"
	"kanban/internal/kanban/filter"
	"kanban/internal/kanban/fs"
	"kanban/internal/kanban/models"
	"kanban/internal/kanban/operations"
	"kanban/internal/logs"
	"kanban/internal/store"
)

// BoardService owns the canonical board and keeps it in sync with a store.
// A mutation is applied only after the resulting board has been saved.
type BoardService interface {
	Board() models.Board
	Key() string
	Filtered(q filter.Query) models.Board
	Due(now time.Time) due.Summary
	Find(pattern string) []filter.Match

	AddColumn(ctx context.Context, name string) (models.Column, error)
	RenameColumn(ctx context.Context, columnID, name string) error
	DeleteColumn(ctx context.Context, columnID string) error
	MoveColumn(ctx context.Context, columnID string, newIndex int) error
	ArchiveAllCards(ctx context.Context, columnID string) error

	AddCard(ctx context.Context, columnID string, draft models.Card) (models.Card, error)
	UpdateCard(ctx context.Context, card models.Card) error
	DeleteCard(ctx context.Context, cardID string) error
	MoveCard(ctx context.Context, cardID, fromColumnID, toColumnID string, newIndex int) error
	SetCardTags(ctx context.Context, cardID string, tagIDs []string) error
	AcknowledgeOverdue(ctx context.Context, cardID string) error
	ExtendDueDate(ctx context.Context, cardID string, newDueDate models.DueDate) error

	AddTag(ctx context.Context, draft models.Tag) (models.Tag, error)
	UpdateTag(ctx context.Context, tag models.Tag) error
	DeleteTag(ctx context.Context, tagID string) error

	Import(ctx context.Context, r io.Reader) error
	ImportMarkdown(ctx context.Context, dir string) error
	Export(w io.Writer) error
	ExportMarkdown(dir string) error
	Reset(ctx context.Context) error
	Reload(ctx context.Context) error

	// WatchPath is the file backing the board, empty when the store has none
	WatchPath() string
}

type boardServiceImpl struct {
	board models.Board
	store store.Store
	key   string
}

// NewBoardService loads the board under key, falling back to the default board
func NewBoardService(ctx context.Context, st store.Store, key string) (BoardService, error) {
	svc := &boardServiceImpl{store: st, key: key}
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *boardServiceImpl) Reload(ctx context.Context) error {
	board, err := store.LoadOrDefault(ctx, s.store, s.key)
	if err != nil {
		return err
	}
	s.board = board
	return nil
}

func (s *boardServiceImpl) Board() models.Board {
	return s.board.Clone()
}

func (s *boardServiceImpl) Key() string {
	return s.key
}

func (s *boardServiceImpl) Filtered(q filter.Query) models.Board {
	return filter.FilterBoard(s.board, q)
}

func (s *boardServiceImpl) Due(now time.Time) due.Summary {
	return due.Summarize(s.board, now)
}

func (s *boardServiceImpl) Find(pattern string) []filter.Match {
	return filter.FindCards(s.board, pattern)
}

func (s *boardServiceImpl) WatchPath() string {
	if p, ok := s.store.(interface{ Path(string) string }); ok {
		return p.Path(s.key)
	}
	return ""
}

// commit saves next and installs it as the current board. Operation errors
// and save failures leave the current board untouched.
func (s *boardServiceImpl) commit(ctx context.Context, op, id string, next models.Board, opErr error) error {
	if opErr != nil {
		logs.Logger.Printf("Service: %s %s: %v\n", op, id, opErr)
		return opErr
	}
	if err := s.store.Save(ctx, s.key, next); err != nil {
		logs.Logger.Printf("Service: %s %s: save failed: %v\n", op, id, err)
		return fmt.Errorf("save board: %w", err)
	}
	logs.Logger.Printf("Service: %s %s\n", op, id)
	s.board = next
	return nil
}

func (s *boardServiceImpl) AddColumn(ctx context.Context, name string) (models.Column, error) {
	name, err := operations.ValidateColumnName(name)
	if err != nil {
		return models.Column{}, err
	}
	next, col, err := operations.AddColumn(s.board, name)
	if err := s.commit(ctx, "AddColumn", col.ID, next, err); err != nil {
		return models.Column{}, err
	}
	return col, nil
}

func (s *boardServiceImpl) RenameColumn(ctx context.Context, columnID, name string) error {
	name, err := operations.ValidateColumnName(name)
	if err != nil {
		return err
	}
	next, err := operations.RenameColumn(s.board, columnID, name)
	return s.commit(ctx, "RenameColumn", columnID, next, err)
}

func (s *boardServiceImpl) DeleteColumn(ctx context.Context, columnID string) error {
	next, err := operations.DeleteColumn(s.board, columnID)
	return s.commit(ctx, "DeleteColumn", columnID, next, err)
}

func (s *boardServiceImpl) MoveColumn(ctx context.Context, columnID string, newIndex int) error {
	next, err := operations.MoveColumn(s.board, columnID, newIndex)
	return s.commit(ctx, "MoveColumn", columnID, next, err)
}

func (s *boardServiceImpl) ArchiveAllCards(ctx context.Context, columnID string) error {
	next, err := operations.ArchiveAllCards(s.board, columnID)
	return s.commit(ctx, "ArchiveAllCards", columnID, next, err)
}

func (s *boardServiceImpl) AddCard(ctx context.Context, columnID string, draft models.Card) (models.Card, error) {
	if err := validateCard(&draft); err != nil {
		return models.Card{}, err
	}
	next, card, err := operations.AddCard(s.board, columnID, draft)
	if err := s.commit(ctx, "AddCard", card.ID, next, err); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (s *boardServiceImpl) UpdateCard(ctx context.Context, card models.Card) error {
	if err := validateCard(&card); err != nil {
		return err
	}
	next, err := operations.UpdateCard(s.board, card)
	return s.commit(ctx, "UpdateCard", card.ID, next, err)
}

func (s *boardServiceImpl) DeleteCard(ctx context.Context, cardID string) error {
	next, err := operations.DeleteCard(s.board, cardID)
	return s.commit(ctx, "DeleteCard", cardID, next, err)
}

func (s *boardServiceImpl) MoveCard(ctx context.Context, cardID, fromColumnID, toColumnID string, newIndex int) error {
	next, err := operations.MoveCard(s.board, cardID, fromColumnID, toColumnID, newIndex)
	return s.commit(ctx, "MoveCard", cardID, next, err)
}

func (s *boardServiceImpl) SetCardTags(ctx context.Context, cardID string, tagIDs []string) error {
	next, err := operations.SetCardTags(s.board, cardID, tagIDs)
	return s.commit(ctx, "SetCardTags", cardID, next, err)
}

func (s *boardServiceImpl) AcknowledgeOverdue(ctx context.Context, cardID string) error {
	next, err := operations.AcknowledgeOverdue(s.board, cardID)
	return s.commit(ctx, "AcknowledgeOverdue", cardID, next, err)
}

func (s *boardServiceImpl) ExtendDueDate(ctx context.Context, cardID string, newDueDate models.DueDate) error {
	next, err := operations.ExtendDueDate(s.board, cardID, newDueDate)
	return s.commit(ctx, "ExtendDueDate", cardID, next, err)
}

func (s *boardServiceImpl) AddTag(ctx context.Context, draft models.Tag) (models.Tag, error) {
	if err := validateTag(&draft); err != nil {
		return models.Tag{}, err
	}
	next, tag, err := operations.AddTag(s.board, draft)
	if err := s.commit(ctx, "AddTag", tag.ID, next, err); err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *boardServiceImpl) UpdateTag(ctx context.Context, tag models.Tag) error {
	if err := validateTag(&tag); err != nil {
		return err
	}
	next, err := operations.UpdateTag(s.board, tag)
	return s.commit(ctx, "UpdateTag", tag.ID, next, err)
}

func (s *boardServiceImpl) DeleteTag(ctx context.Context, tagID string) error {
	next, err := operations.DeleteTag(s.board, tagID)
	return s.commit(ctx, "DeleteTag", tagID, next, err)
}

// Import replaces the whole board with a JSON document. A rejected
// document leaves the current board in place.
func (s *boardServiceImpl) Import(ctx context.Context, r io.Reader) error {
	board, err := fs.ImportJSON(r)
	return s.commit(ctx, "Import", board.ID, board, err)
}

func (s *boardServiceImpl) ImportMarkdown(ctx context.Context, dir string) error {
	board, err := fs.ReadMarkdown(dir)
	return s.commit(ctx, "ImportMarkdown", dir, board, err)
}

func (s *boardServiceImpl) Export(w io.Writer) error {
	return fs.ExportJSON(w, s.board)
}

func (s *boardServiceImpl) ExportMarkdown(dir string) error {
	return fs.WriteMarkdown(dir, s.board)
}

// Reset replaces the board with the default board
func (s *boardServiceImpl) Reset(ctx context.Context) error {
	board := models.DefaultBoard()
	return s.commit(ctx, "Reset", board.ID, board, nil)
}

func validateCard(card *models.Card) error {
	title, err := operations.ValidateCardTitle(card.Title)
	if err != nil {
		return err
	}
	card.Title = title
	if card.Priority != "" && !card.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", operations.ErrValidation, card.Priority)
	}
	return nil
}

func validateTag(tag *models.Tag) error {
	name, err := operations.ValidateTagName(tag.Name)
	if err != nil {
		return err
	}
	tag.Name = name
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	color, err := operations.ValidateTagColor(tag.Color)
	if err != nil {
		return err
	}
	tag.Color = color
	return nil
}
