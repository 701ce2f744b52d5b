package models

// Tag is a named, colored label referenced by cards
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Column is a named, ordered bucket of cards
type Column struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Board is the root aggregate: ordered columns plus the tag set
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Tags    []Tag    `json:"tags"`
}

// DefaultTagColor is preselected when creating a tag
const DefaultTagColor = "#3b82f6"

// TagPalette is the set of swatches offered for tag colors
var TagPalette = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e",
	"#10b981", "#06b6d4", "#3b82f6", "#6366f1",
	"#8b5cf6", "#d946ef", "#ec4899", "#f43f5e",
}

// DefaultBoard returns the board used when nothing has been persisted yet
func DefaultBoard() Board {
	return Board{
		ID:   "main-board",
		Name: "My Tasks",
		Columns: []Column{
			{ID: "todo", Name: "To Do", Cards: []Card{}},
			{ID: "in-progress", Name: "In Progress", Cards: []Card{}},
			{ID: "done", Name: "Done", Cards: []Card{}},
		},
		Tags: []Tag{
			{ID: "urgent", Name: "Urgent", Color: "#ef4444"},
			{ID: "work", Name: "Work", Color: "#3b82f6"},
			{ID: "personal", Name: "Personal", Color: "#10b981"},
		},
	}
}

// ColumnIndex returns the index of the column with the given id, or -1
func (b Board) ColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// ColumnByID returns the column with the given id
func (b Board) ColumnByID(id string) (Column, bool) {
	if i := b.ColumnIndex(id); i >= 0 {
		return b.Columns[i], true
	}
	return Column{}, false
}

// FindCard locates a card anywhere on the board.
// Returns (-1, -1) if the card does not exist.
func (b Board) FindCard(id string) (colIndex, cardIndex int) {
	for i, col := range b.Columns {
		if j := col.CardIndex(id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// CardByID returns the card with the given id and the id of its column
func (b Board) CardByID(id string) (Card, string, bool) {
	ci, j := b.FindCard(id)
	if ci < 0 {
		return Card{}, "", false
	}
	return b.Columns[ci].Cards[j], b.Columns[ci].ID, true
}

// CardIndex returns the index of the card within the column, or -1
func (c Column) CardIndex(id string) int {
	for i := range c.Cards {
		if c.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// TagIndex returns the index of the tag with the given id, or -1
func (b Board) TagIndex(id string) int {
	for i := range b.Tags {
		if b.Tags[i].ID == id {
			return i
		}
	}
	return -1
}

// TagByID returns the tag with the given id
func (b Board) TagByID(id string) (Tag, bool) {
	if i := b.TagIndex(id); i >= 0 {
		return b.Tags[i], true
	}
	return Tag{}, false
}

// ResolveTags maps a card's tag references to tags, skipping dangling ids
func (b Board) ResolveTags(card Card) []Tag {
	var out []Tag
	for _, id := range card.Tags {
		if tag, ok := b.TagByID(id); ok {
			out = append(out, tag)
		}
	}
	return out
}

// CardCount returns the number of cards across all columns
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := b
	if b.Columns != nil {
		out.Columns = make([]Column, len(b.Columns))
		for i, col := range b.Columns {
			out.Columns[i] = col.Clone()
		}
	}
	if b.Tags != nil {
		out.Tags = make([]Tag, len(b.Tags))
		copy(out.Tags, b.Tags)
	}
	return out
}

// Clone returns a deep copy of the column
func (c Column) Clone() Column {
	out := c
	if c.Cards != nil {
		out.Cards = make([]Card, len(c.Cards))
		for i, card := range c.Cards {
			out.Cards[i] = card.Clone()
		}
	}
	return out
}
