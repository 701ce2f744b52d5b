package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kanban/internal/kanban/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ReadCard reads a card file written by WriteCard. A card without an id in
// its frontmatter takes the file name (minus .md) as id.
func ReadCard(cardPath string) (models.Card, error) {
	content, err := os.ReadFile(cardPath)
	if err != nil {
		return models.Card{}, err
	}

	raw, body := splitFrontmatter(content)
	var fm cardFrontmatter
	if raw != nil {
		if err := yaml.Unmarshal(raw, &fm); err != nil {
			return models.Card{}, fmt.Errorf("%s: frontmatter: %w", filepath.Base(cardPath), err)
		}
	}

	card := models.Card{
		ID:                  fm.ID,
		Priority:            models.Priority(strings.ToLower(fm.Priority)),
		OverdueAcknowledged: fm.Acknowledged,
		Tags:                fm.Tags,
	}
	if card.ID == "" {
		card.ID = strings.TrimSuffix(filepath.Base(cardPath), ".md")
	}
	if fm.Due != "" {
		due, err := models.ParseDueDate(fm.Due)
		if err != nil {
			return models.Card{}, fmt.Errorf("%s: %w", filepath.Base(cardPath), err)
		}
		card.DueDate = &due
	}
	if fm.Created != "" {
		if created, err := time.Parse(time.RFC3339, fm.Created); err == nil {
			card.CreatedAt = created
		}
	}

	card.Title, card.Description = splitTitle(body)
	return card, nil
}

// splitTitle returns the first H1 as title and everything after it as the
// description. Without an H1 the title is "Untitled".
func splitTitle(body []byte) (string, string) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	title := ""
	rest := body
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = headingText(heading, body)
		if lines := heading.Lines(); lines.Len() > 0 {
			end := lines.At(lines.Len() - 1).Stop
			if nl := bytes.IndexByte(body[end:], '\n'); nl >= 0 {
				rest = body[end+nl+1:]
			} else {
				rest = nil
			}
		}
		return ast.WalkStop, nil
	})

	if title == "" {
		title = "Untitled"
	}
	return title, strings.TrimSpace(string(rest))
}

// headingText returns the raw source of a heading, inline markup included
func headingText(h *ast.Heading, source []byte) string {
	lines := h.Lines()
	if lines.Len() == 0 {
		return ""
	}
	return strings.TrimSpace(string(lines.Value(source)))
}
