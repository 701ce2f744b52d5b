package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"kanban/internal/kanban/models"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore keeps each key in <dir>/<key>.json
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(ctx context.Context, key string) (models.Board, error) {
	if err := checkKey(key); err != nil {
		return models.Board{}, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Board{}, ErrNotFound
		}
		return models.Board{}, err
	}
	return models.DecodeBoard(data)
}

// Save writes to a temporary file and renames it over the previous blob,
// so a failed write never leaves a truncated board behind.
func (s *FileStore) Save(ctx context.Context, key string, board models.Board) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := models.EncodeBoard(board)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write board: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write board: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace board: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
