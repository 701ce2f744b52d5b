// Package store persists boards as opaque blobs under a named key.
package store

import (
	"context"
	"errors"
	"fmt"

	"kanban/internal/config"
	"kanban/internal/kanban/models"
	"kanban/internal/logs"
)

var ErrNotFound = errors.New("store: not found")

// Store is a key/value blob store holding JSON-serialized boards
type Store interface {
	Load(ctx context.Context, key string) (models.Board, error)
	Save(ctx context.Context, key string, board models.Board) error
	Close() error
}

// Open returns the store selected by the configured backend
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.DataDir)
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// LoadOrDefault loads the board under key, falling back to the default
// board when nothing is stored or the stored blob is invalid. Other errors
// (I/O, database) are returned.
func LoadOrDefault(ctx context.Context, s Store, key string) (models.Board, error) {
	board, err := s.Load(ctx, key)
	switch {
	case err == nil:
		return board, nil
	case errors.Is(err, ErrNotFound):
		logs.Logger.Printf("No board stored under %q, using default board", key)
		return models.DefaultBoard(), nil
	case errors.Is(err, models.ErrInvalidBoard):
		logs.Logger.Printf("Stored board %q is invalid, using default board: %v", key, err)
		return models.DefaultBoard(), nil
	default:
		return models.Board{}, err
	}
}
