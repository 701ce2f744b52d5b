package kanban

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// MultiSelectPickerConfig configures a multi-select picker over named items
type MultiSelectPickerConfig struct {
	Title       string
	ItemNoun    string              // "tag"
	Normalize   func(string) string // applied to newly created names
	AllItems    []string
	Selected    map[string]bool
	Decorate    func(string) string // optional, renders an item's label
	AllowCreate bool
}

// MultiSelectPickerModel is a fuzzy-searchable multi-select picker
type MultiSelectPickerModel struct {
	config    MultiSelectPickerConfig
	input     textinput.Model
	query     string
	visible   []string
	cursor    int
	offerNew  bool // query names an item that does not exist yet
	filtering bool
	creating  bool
	confirmed bool
}

// NewMultiSelectPickerModel creates a picker in navigation mode
func NewMultiSelectPickerModel(config MultiSelectPickerConfig) MultiSelectPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 50
	ti.Width = 40
	ti.Blur()

	if config.Selected == nil {
		config.Selected = make(map[string]bool)
	}
	if config.Normalize == nil {
		config.Normalize = strings.TrimSpace
	}
	items := slices.Clone(config.AllItems)
	sort.Strings(items)
	config.AllItems = items

	return MultiSelectPickerModel{
		config:  config,
		input:   ti,
		visible: config.AllItems,
	}
}

func (m MultiSelectPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles picker keys. The bool result reports whether the picker
// is finished; Confirmed tells a save from a cancel.
func (m MultiSelectPickerModel) Update(msg tea.KeyMsg) (MultiSelectPickerModel, tea.Cmd, bool) {
	switch {
	case m.filtering:
		return m.updateFiltering(msg)
	case m.creating:
		return m.updateCreating(msg)
	}

	switch msg.String() {
	case "n":
		if !m.config.AllowCreate {
			return m, nil, false
		}
		m.input.SetValue("")
		m.input.Placeholder = "New " + m.config.ItemNoun + " name..."
		m.input.Focus()
		m.creating = true
		return m, textinput.Blink, false

	case "/":
		m.input.Focus()
		m.filtering = true
		return m, textinput.Blink, false

	case "enter":
		m.confirmed = true
		return m, nil, true

	case "esc":
		if m.query != "" {
			m.setQuery("")
			return m, nil, false
		}
		return m, nil, true

	case "tab", " ":
		m.toggle()

	case "j", "down":
		last := len(m.visible) - 1
		if m.offerNew {
			last++
		}
		if m.cursor < last {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	}

	return m, nil, false
}

func (m MultiSelectPickerModel) updateFiltering(msg tea.KeyMsg) (MultiSelectPickerModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		m.setQuery("")
		m.input.Blur()
		m.filtering = false
		return m, nil, false
	case "enter":
		m.input.Blur()
		m.filtering = false
		return m, nil, false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	m.refilter()
	m.cursor = 0
	return m, cmd, false
}

func (m MultiSelectPickerModel) updateCreating(msg tea.KeyMsg) (MultiSelectPickerModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
	case "enter":
		if name := m.config.Normalize(m.input.Value()); name != "" {
			m.config.Selected[name] = true
			if !slices.Contains(m.config.AllItems, name) {
				m.config.AllItems = append(m.config.AllItems, name)
				sort.Strings(m.config.AllItems)
			}
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd, false
	}

	m.input.SetValue("")
	m.input.Placeholder = "Press / to filter..."
	m.input.Blur()
	m.creating = false
	m.refilter()
	return m, nil, false
}

// Confirmed reports whether the picker was closed with enter
func (m MultiSelectPickerModel) Confirmed() bool {
	return m.confirmed
}

func (m MultiSelectPickerModel) View() string {
	var s strings.Builder

	s.WriteString(pickerTitleStyle.Render(m.config.Title))
	s.WriteString("\n\n")

	if m.creating {
		s.WriteString(pickerTitleStyle.Render("Create new: "))
	} else if m.filtering {
		s.WriteString(pickerTitleStyle.Render("Filtering: "))
	}
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	switch {
	case len(m.config.AllItems) == 0:
		hint := "No " + m.config.ItemNoun + "s yet."
		if m.config.AllowCreate {
			hint += " Press 'n' to create one."
		}
		s.WriteString(pickerItemStyle.Render(hint) + "\n")
	case len(m.visible) == 0 && !m.offerNew:
		s.WriteString(pickerItemStyle.Render("No matching "+m.config.ItemNoun+"s") + "\n")
	default:
		for i, item := range m.visible {
			s.WriteString(m.renderItem(i, item))
		}
		if m.offerNew {
			s.WriteString(m.renderCreateNew(len(m.visible)))
		}
	}
	s.WriteString("\n")

	switch {
	case m.creating:
		s.WriteString(helpStyle.Render("enter: create • esc: cancel"))
	case m.filtering:
		s.WriteString(helpStyle.Render("enter: apply filter • esc: cancel"))
	default:
		help := "jk: navigate • tab: toggle • /: filter • enter: save • esc: cancel"
		if m.config.AllowCreate {
			help = "jk: navigate • tab: toggle • n: new • /: filter • enter: save • esc: cancel"
		}
		s.WriteString(helpStyle.Render(help))
	}

	return pickerBoxStyle.Render(s.String())
}

func (m MultiSelectPickerModel) renderItem(index int, item string) string {
	checkbox := "[ ]"
	if m.config.Selected[item] {
		checkbox = "[x]"
	}

	label := item
	if m.config.Decorate != nil && index != m.cursor {
		label = m.config.Decorate(item)
	}

	style := pickerItemStyle
	if index == m.cursor {
		style = pickerItemHighlightStyle
	} else if m.config.Selected[item] {
		style = pickerItemSelectedStyle
	}
	return style.Render(checkbox+" ") + style.Render(label) + "\n"
}

func (m MultiSelectPickerModel) renderCreateNew(index int) string {
	name := m.config.Normalize(m.query)
	checkbox := "[ ]"
	if m.config.Selected[name] {
		checkbox = "[x]"
	}

	style := pickerCreateNewStyle
	if index == m.cursor {
		style = pickerItemHighlightStyle.Foreground(pickerCreateNewStyle.GetForeground())
	}
	return style.Render(checkbox+" + Create new: \""+name+"\"") + "\n"
}

func (m *MultiSelectPickerModel) toggle() {
	var name string
	switch {
	case m.offerNew && m.cursor == len(m.visible):
		name = m.config.Normalize(m.query)
	case m.cursor >= 0 && m.cursor < len(m.visible):
		name = m.visible[m.cursor]
	}
	if name == "" {
		return
	}
	if m.config.Selected[name] {
		delete(m.config.Selected, name)
	} else {
		m.config.Selected[name] = true
	}
}

func (m *MultiSelectPickerModel) setQuery(q string) {
	m.input.SetValue(q)
	m.query = q
	m.refilter()
	m.cursor = 0
}

func (m *MultiSelectPickerModel) refilter() {
	if m.query == "" {
		m.visible = m.config.AllItems
		m.offerNew = false
		return
	}

	matches := fuzzy.Find(m.query, m.config.AllItems)
	m.visible = make([]string, len(matches))
	for i, match := range matches {
		m.visible[i] = match.Str
	}
	m.offerNew = m.config.AllowCreate && !hasName(m.config.AllItems, m.query)
}

// hasName reports whether name matches an item, ignoring case and padding
func hasName(items []string, name string) bool {
	name = strings.TrimSpace(name)
	for _, item := range items {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}

// SelectedItems returns the chosen names in sorted order
func (m MultiSelectPickerModel) SelectedItems() []string {
	items := make([]string, 0, len(m.config.Selected))
	for item, on := range m.config.Selected {
		if on {
			items = append(items, item)
		}
	}
	sort.Strings(items)
	return items
}
