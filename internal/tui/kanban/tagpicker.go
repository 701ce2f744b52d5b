package kanban

import (
	"strings"

	"kanban/internal/kanban/models"
	"kanban/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// TagPickerModel edits the tags of one card. Tags are shown by name; names
// typed into the picker that match no tag become new tags on save.
type TagPickerModel struct {
	picker MultiSelectPickerModel
	cardID string
	byName map[string]models.Tag
}

// NewTagPickerModel creates a picker preloaded with the card's tags
func NewTagPickerModel(board models.Board, card models.Card) TagPickerModel {
	byName := make(map[string]models.Tag, len(board.Tags))
	names := make([]string, 0, len(board.Tags))
	for _, tag := range board.Tags {
		byName[tag.Name] = tag
		names = append(names, tag.Name)
	}

	selected := make(map[string]bool)
	for _, tag := range board.ResolveTags(card) {
		selected[tag.Name] = true
	}

	return TagPickerModel{
		cardID: card.ID,
		byName: byName,
		picker: NewMultiSelectPickerModel(MultiSelectPickerConfig{
			Title:       "Edit Tags",
			ItemNoun:    "tag",
			Normalize:   sanitizeTagName,
			AllItems:    names,
			Selected:    selected,
			AllowCreate: true,
			Decorate: func(name string) string {
				if tag, ok := byName[name]; ok {
					return theme.TagColor(tag.Color).Render(name)
				}
				return name
			},
		}),
	}
}

func (m TagPickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update returns (model, cmd, isDone)
func (m TagPickerModel) Update(msg tea.KeyMsg) (TagPickerModel, tea.Cmd, bool) {
	picker, cmd, done := m.picker.Update(msg)
	m.picker = picker
	return m, cmd, done
}

func (m TagPickerModel) View() string {
	return m.picker.View()
}

// Confirmed reports whether the selection should be saved
func (m TagPickerModel) Confirmed() bool {
	return m.picker.Confirmed()
}

// CardID is the card being edited
func (m TagPickerModel) CardID() string {
	return m.cardID
}

// Selection splits the chosen names into ids of existing tags and names
// that still need a tag created.
func (m TagPickerModel) Selection() (ids []string, newNames []string) {
	for _, name := range m.picker.SelectedItems() {
		if tag, ok := m.byName[name]; ok {
			ids = append(ids, tag.ID)
			continue
		}
		newNames = append(newNames, name)
	}
	return ids, newNames
}

// sanitizeTagName collapses inner whitespace and strips a leading '#'
func sanitizeTagName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	return strings.Join(strings.Fields(name), " ")
}
