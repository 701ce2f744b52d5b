package fs

import (
	"bytes"
	"os"
	"time"

	"kanban/internal/kanban/models"
)

type cardFrontmatter struct {
	ID           string   `yaml:"id"`
	Priority     string   `yaml:"priority,omitempty"`
	Due          string   `yaml:"due,omitempty"`
	Acknowledged bool     `yaml:"acknowledged,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
	Created      string   `yaml:"created,omitempty"`
}

// WriteCard writes a card as markdown: frontmatter, H1 title, description
func WriteCard(card models.Card, path string) error {
	var buf bytes.Buffer

	fm := cardFrontmatter{
		ID:           card.ID,
		Priority:     string(card.Priority),
		Acknowledged: card.OverdueAcknowledged,
		Tags:         card.Tags,
	}
	if card.DueDate != nil {
		fm.Due = card.DueDate.String()
	}
	if !card.CreatedAt.IsZero() {
		fm.Created = card.CreatedAt.Format(time.RFC3339)
	}
	if err := writeFrontmatter(&buf, fm); err != nil {
		return err
	}

	buf.WriteString("# ")
	buf.WriteString(card.Title)
	buf.WriteString("\n")
	if card.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(card.Description)
		if card.Description[len(card.Description)-1] != '\n' {
			buf.WriteString("\n")
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
