package kanban

import (
	"kanban/internal/tui/shared"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the normal-mode bindings of the board view
type keyMap struct {
	Left, Right, Up, Down key.Binding

	Move         key.Binding
	ColumnLeft   key.Binding
	ColumnRight  key.Binding
	Search       key.Binding
	TagFilter    key.Binding
	PriorityFilt key.Binding
	ClearFilter  key.Binding

	NewCard      key.Binding
	NewColumn    key.Binding
	EditTitle    key.Binding
	RenameColumn key.Binding
	Priority     key.Binding
	DueDate      key.Binding
	Tags         key.Binding
	Acknowledge  key.Binding
	Extend       key.Binding
	Archive      key.Binding
	Delete       key.Binding
	DeleteColumn key.Binding

	Find   key.Binding
	Detail key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "column")),
		Right: key.NewBinding(key.WithKeys("l", "right")),
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "card")),
		Down:  key.NewBinding(key.WithKeys("j", "down")),

		Move:         key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m", "move card")),
		ColumnLeft:   key.NewBinding(key.WithKeys("<"), key.WithHelp("</>", "move column")),
		ColumnRight:  key.NewBinding(key.WithKeys(">")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		TagFilter:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag filter")),
		PriorityFilt: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "priority filter")),
		ClearFilter:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),

		NewCard:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		NewColumn:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new column")),
		EditTitle:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		RenameColumn: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename column")),
		Priority:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		DueDate:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "due date")),
		Tags:         key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "card tags")),
		Acknowledge:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "acknowledge")),
		Extend:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "extend due")),
		Archive:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "archive column")),
		Delete:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete card")),
		DeleteColumn: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete column")),

		Find:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find")),
		Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Move, k.NewCard, k.Detail, k.Search, k.Find, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up, k.Move, k.ColumnLeft, k.Find, k.Detail},
		{k.Search, k.TagFilter, k.PriorityFilt, k.ClearFilter},
		{k.NewCard, k.EditTitle, k.Priority, k.DueDate, k.Tags, k.Delete},
		{k.Acknowledge, k.Extend},
		{k.NewColumn, k.RenameColumn, k.Archive, k.DeleteColumn},
		{k.Help, k.Quit},
	}
}

// HelpSections lists the bindings for the full help overlay
func HelpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{Title: "Navigate", Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next column"},
			{Key: "j / k", Desc: "Previous / next card"},
			{Key: "f", Desc: "Fuzzy find and jump to a card"},
			{Key: "enter", Desc: "Card details"},
		}},
		{Title: "Filter", Binds: []shared.HelpBind{
			{Key: "/", Desc: "Search title and description"},
			{Key: "t", Desc: "Cycle tag filter"},
			{Key: "P", Desc: "Cycle priority filter"},
			{Key: "esc", Desc: "Clear filters"},
		}},
		{Title: "Cards", Binds: []shared.HelpBind{
			{Key: "n", Desc: "New card in column"},
			{Key: "e", Desc: "Edit title"},
			{Key: "p", Desc: "Set priority"},
			{Key: "d", Desc: "Set due date"},
			{Key: "T", Desc: "Edit tags"},
			{Key: "m / space", Desc: "Move mode (h/l column, j/k reorder)"},
			{Key: "a", Desc: "Acknowledge overdue"},
			{Key: "x", Desc: "Extend due date"},
			{Key: "D", Desc: "Delete card"},
		}},
		{Title: "Columns", Binds: []shared.HelpBind{
			{Key: "N", Desc: "New column"},
			{Key: "R", Desc: "Rename column"},
			{Key: "< / >", Desc: "Move column left / right"},
			{Key: "A", Desc: "Archive all cards"},
			{Key: "X", Desc: "Delete column"},
		}},
		{Title: "Global", Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		}},
	}
}
