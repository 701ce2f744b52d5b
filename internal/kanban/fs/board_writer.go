package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kanban/internal/kanban/models"
)

var linkEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

type columnRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type boardFrontmatter struct {
	ID      string       `yaml:"id"`
	Columns []columnRef  `yaml:"columns"`
	Tags    []models.Tag `yaml:"tags,omitempty"`
}

// WriteMarkdown exports the board to dir as board.md plus one
// cards/<id>.md file per card. Existing files with the same names are
// overwritten; other files are left alone.
func WriteMarkdown(dir string, board models.Board) error {
	cardsDir := filepath.Join(dir, "cards")
	if err := os.MkdirAll(cardsDir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer

	fm := boardFrontmatter{ID: board.ID, Tags: board.Tags}
	for _, col := range board.Columns {
		fm.Columns = append(fm.Columns, columnRef{ID: col.ID, Name: col.Name})
	}
	if err := writeFrontmatter(&buf, fm); err != nil {
		return err
	}

	buf.WriteString("# ")
	buf.WriteString(board.Name)
	buf.WriteString("\n\n")

	for _, column := range board.Columns {
		buf.WriteString("## ")
		buf.WriteString(column.Name)
		buf.WriteString("\n\n")

		for _, card := range column.Cards {
			if strings.ContainsAny(card.ID, `/\`) {
				return fmt.Errorf("card id %q cannot be used as a file name", card.ID)
			}
			buf.WriteString("[")
			buf.WriteString(linkEscaper.Replace(card.Title))
			buf.WriteString("](./cards/")
			buf.WriteString(card.ID)
			buf.WriteString(".md)\n\n")

			if err := WriteCard(card, filepath.Join(cardsDir, card.ID+".md")); err != nil {
				return fmt.Errorf("write card %s: %w", card.ID, err)
			}
		}
	}

	return os.WriteFile(filepath.Join(dir, "board.md"), buf.Bytes(), 0644)
}
