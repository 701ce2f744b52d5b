package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"kanban/internal/kanban/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ReadMarkdown reads a board exported by WriteMarkdown. Column ids come from
// the frontmatter when the heading at the same position carries the same
// name; otherwise they are derived from the heading. Links to missing card
// files are skipped. The result is validated like a JSON import.
func ReadMarkdown(dir string) (models.Board, error) {
	content, err := os.ReadFile(filepath.Join(dir, "board.md"))
	if err != nil {
		return models.Board{}, err
	}

	raw, body := splitFrontmatter(content)
	var fm boardFrontmatter
	if raw != nil {
		if err := yaml.Unmarshal(raw, &fm); err != nil {
			return models.Board{}, fmt.Errorf("%w: board frontmatter: %v", ErrInvalidImport, err)
		}
	}

	board := models.Board{
		ID:      fm.ID,
		Columns: []models.Column{},
		Tags:    fm.Tags,
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var current *models.Column
	var readErr error
	seen := make(map[string]bool)
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			name := headingText(node, body)

			if node.Level == 1 {
				board.Name = name
			} else if node.Level == 2 {
				if current != nil {
					board.Columns = append(board.Columns, *current)
				}
				id := columnID(fm.Columns, len(board.Columns), name, seen)
				seen[id] = true
				current = &models.Column{
					ID:    id,
					Name:  name,
					Cards: []models.Card{},
				}
			}

		case *ast.Link:
			dest := string(node.Destination)
			if !strings.HasPrefix(dest, "./cards/") && !strings.HasPrefix(dest, "cards/") {
				return ast.WalkContinue, nil
			}
			cardPath := filepath.Join(dir, dest)
			if !fileExistsAt(cardPath) || current == nil {
				return ast.WalkContinue, nil
			}
			card, err := ReadCard(cardPath)
			if err != nil {
				readErr = err
				return ast.WalkStop, nil
			}
			current.Cards = append(current.Cards, card)
		}

		return ast.WalkContinue, nil
	})
	if readErr != nil {
		return models.Board{}, fmt.Errorf("%w: %v", ErrInvalidImport, readErr)
	}

	if current != nil {
		board.Columns = append(board.Columns, *current)
	}

	if err := models.ValidateBoard(board); err != nil {
		return models.Board{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return models.Normalize(board), nil
}

func columnID(refs []columnRef, i int, name string, seen map[string]bool) string {
	if i < len(refs) && refs[i].Name == name && refs[i].ID != "" {
		return refs[i].ID
	}
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "column"
	}
	id := slug
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", slug, n)
	}
	return id
}

func fileExistsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
