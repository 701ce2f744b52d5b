package kanban

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban/internal/kanban/due"
	"kanban/internal/kanban/filter"
	"kanban/internal/kanban/models"
	"kanban/internal/kanban/operations"
	"kanban/internal/kanban/service"
	"kanban/internal/tui/messages"
	"kanban/internal/tui/shared"
	"kanban/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeMove
	boardModeSearch
	boardModePrompt
	boardModeConfirm
	boardModeTagEdit
	boardModePriorityInput
	boardModeExtend
	boardModeFind
	boardModeDetail
)

// priorityCycle is the order the priority filter steps through
var priorityCycle = []models.Priority{filter.PriorityAll, models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

type BoardModel struct {
	ctx  context.Context
	svc  service.BoardService
	now  func() time.Time
	keys keyMap
	help help.Model

	board models.Board // full snapshot from the service
	view  models.Board // board after the filter query
	query filter.Query

	selectedCol  int
	selectedCard int // index into the filtered column
	mode         boardMode
	width        int
	height       int
	err          error
	message      string

	searchInput   textinput.Model
	prompt        *PromptModel
	confirm       *ConfirmationModal
	tagPicker     *TagPickerModel
	priorityInput *PriorityInputModel
	extendPicker  *ExtendPickerModel
	finder        *FinderModel
	detailCardID  string

	columnScrollOffsets    []int // scroll position (card index) for each column
	columnCursorPos        []int // cursor position (card index) for each column
	columnHorizontalOffset int   // first visible column index
}

func NewBoardModel(ctx context.Context, svc service.BoardService) BoardModel {
	m := BoardModel{
		ctx:   ctx,
		svc:   svc,
		now:   time.Now,
		keys:  defaultKeyMap(),
		help:  help.New(),
		query: filter.Query{Priority: filter.PriorityAll},
	}
	m.Refresh()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// Refresh re-reads the board from the service, keeping the cursor on the
// same card when it still exists.
func (m *BoardModel) Refresh() {
	keepID := ""
	if card, ok := m.currentCard(); ok {
		keepID = card.ID
	}

	m.board = m.svc.Board()
	m.view = m.svc.Filtered(m.query)
	m.syncArrays()

	if keepID != "" && m.selectCard(keepID) {
		return
	}
	m.clampCursors()
}

// IsModal reports whether keys are captured by an input, picker or dialog
func (m BoardModel) IsModal() bool {
	switch m.mode {
	case boardModeNormal, boardModeMove, boardModeDetail:
		return false
	}
	return true
}

// SetMessage shows a one-line status under the board
func (m *BoardModel) SetMessage(msg string) {
	m.message = msg
	m.err = nil
}

// SetError shows an error under the board
func (m *BoardModel) SetError(err error) {
	m.err = err
	m.message = ""
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == boardModeSearch {
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case boardModeMove:
		return m.updateMove(keyMsg)
	case boardModeSearch:
		return m.updateSearch(keyMsg)
	case boardModePrompt:
		return m.updatePrompt(keyMsg)
	case boardModeConfirm:
		return m.updateConfirm(keyMsg)
	case boardModeTagEdit:
		return m.updateTagEdit(keyMsg)
	case boardModePriorityInput:
		return m.updatePriorityInput(keyMsg)
	case boardModeExtend:
		return m.updateExtend(keyMsg)
	case boardModeFind:
		return m.updateFind(keyMsg)
	case boardModeDetail:
		return m.updateDetail(keyMsg)
	}
	return m.updateNormal(keyMsg)
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, messages.ShowHelp()

	case key.Matches(msg, m.keys.ClearFilter):
		if !m.query.IsEmpty() {
			m.setQuery(filter.Query{Priority: filter.PriorityAll})
			m.message = "Filters cleared"
		}

	case key.Matches(msg, m.keys.Left):
		if m.selectedCol > 0 {
			m.focusColumn(m.selectedCol - 1)
		}

	case key.Matches(msg, m.keys.Right):
		if m.selectedCol < len(m.view.Columns)-1 {
			m.focusColumn(m.selectedCol + 1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.selectedCard < len(m.visibleCards(m.selectedCol))-1 {
			m.selectedCard++
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case key.Matches(msg, m.keys.Up):
		if m.selectedCard > 0 {
			m.selectedCard--
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case key.Matches(msg, m.keys.Move):
		if _, ok := m.currentCard(); ok {
			m.mode = boardModeMove
		}

	case key.Matches(msg, m.keys.ColumnLeft):
		return m.moveColumn(-1), nil

	case key.Matches(msg, m.keys.ColumnRight):
		return m.moveColumn(1), nil

	case key.Matches(msg, m.keys.Search):
		ti := textinput.New()
		ti.Placeholder = "search..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.query.SearchText)
		ti.Focus()
		m.searchInput = ti
		m.mode = boardModeSearch
		return m, textinput.Blink

	case key.Matches(msg, m.keys.TagFilter):
		m.cycleTagFilter()

	case key.Matches(msg, m.keys.PriorityFilt):
		m.cyclePriorityFilter()

	case key.Matches(msg, m.keys.NewCard):
		if col, ok := m.currentColumn(); ok {
			return m.openPrompt(NewPromptModel(promptNewCard, "New card in "+col.Name, "", "title", operations.ValidateCardTitle))
		}
		m.err = fmt.Errorf("add a column first (N)")

	case key.Matches(msg, m.keys.NewColumn):
		return m.openPrompt(NewPromptModel(promptNewColumn, "New column", "", "name", operations.ValidateColumnName))

	case key.Matches(msg, m.keys.RenameColumn):
		if col, ok := m.currentColumn(); ok {
			return m.openPrompt(NewPromptModel(promptRenameColumn, "Rename column", col.Name, "name", operations.ValidateColumnName))
		}

	case key.Matches(msg, m.keys.EditTitle):
		return m.editTitle()

	case key.Matches(msg, m.keys.DueDate):
		if card, ok := m.currentCard(); ok {
			initial := ""
			if card.DueDate != nil {
				initial = card.DueDate.String()
			}
			return m.openPrompt(NewPromptModel(promptDueDate, "Due date (empty clears)", initial, "2006-01-02, today, tomorrow, +3d", m.validateDue(true)))
		}

	case key.Matches(msg, m.keys.Priority):
		if card, ok := m.currentCard(); ok {
			p := NewPriorityInputModel(card.Priority, m.width, m.height)
			m.priorityInput = &p
			m.mode = boardModePriorityInput
		}

	case key.Matches(msg, m.keys.Tags):
		if card, ok := m.currentCard(); ok {
			picker := NewTagPickerModel(m.board, card)
			m.tagPicker = &picker
			m.mode = boardModeTagEdit
		}

	case key.Matches(msg, m.keys.Acknowledge):
		return m.acknowledge(), nil

	case key.Matches(msg, m.keys.Extend):
		return m.openExtend()

	case key.Matches(msg, m.keys.Delete):
		if card, ok := m.currentCard(); ok {
			return m.openConfirm(NewConfirmationModal(confirmDeleteCard, card.ID, "Delete this card?", card.Title))
		}

	case key.Matches(msg, m.keys.Archive):
		if col, ok := m.currentColumn(); ok && len(col.Cards) > 0 {
			return m.openConfirm(NewConfirmationModal(confirmArchiveColumn, col.ID,
				fmt.Sprintf("Archive all %d cards in %s?", len(col.Cards), col.Name), "The cards are removed from the board."))
		}

	case key.Matches(msg, m.keys.DeleteColumn):
		if col, ok := m.currentColumn(); ok {
			details := "The column is empty."
			if n := len(col.Cards); n > 0 {
				details = fmt.Sprintf("Its %d cards are deleted too.", n)
			}
			return m.openConfirm(NewConfirmationModal(confirmDeleteColumn, col.ID, "Delete column "+col.Name+"?", details))
		}

	case key.Matches(msg, m.keys.Find):
		f := NewFinderModel(m.board, m.svc.Find)
		m.finder = &f
		m.mode = boardModeFind
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Detail):
		if card, ok := m.currentCard(); ok {
			m.detailCardID = card.ID
			m.mode = boardModeDetail
		}
	}

	return m, nil
}

func (m BoardModel) updateMove(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		m.mode = boardModeNormal
		return m, nil
	}
	col := m.view.Columns[m.selectedCol]

	switch msg.String() {
	case "esc", "q", "m", "enter", " ":
		m.mode = boardModeNormal

	case "h", "left", "l", "right":
		target := m.selectedCol - 1
		if s := msg.String(); s == "l" || s == "right" {
			target = m.selectedCol + 1
		}
		if target < 0 || target >= len(m.board.Columns) {
			return m, nil
		}
		dest := m.board.Columns[target]
		if err := m.svc.MoveCard(m.ctx, card.ID, col.ID, dest.ID, len(dest.Cards)); err != nil {
			m.err = err
			m.mode = boardModeNormal
			return m, nil
		}
		m.Refresh()
		m.message = "Card moved to " + dest.Name

	case "j", "down", "k", "up":
		visible := m.visibleCards(m.selectedCol)
		neighbor := m.selectedCard + 1
		if s := msg.String(); s == "k" || s == "up" {
			neighbor = m.selectedCard - 1
		}
		if neighbor < 0 || neighbor >= len(visible) {
			return m, nil
		}
		// Removing the card first leaves the neighbor's slot as the insert
		// point in both directions.
		newIndex := m.board.Columns[m.selectedCol].CardIndex(visible[neighbor].ID)
		if err := m.svc.MoveCard(m.ctx, card.ID, col.ID, col.ID, newIndex); err != nil {
			m.err = err
			m.mode = boardModeNormal
			return m, nil
		}
		m.Refresh()
	}

	return m, nil
}

func (m BoardModel) updateSearch(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = boardModeNormal
		return m, nil
	case "esc":
		q := m.query
		q.SearchText = ""
		m.setQuery(q)
		m.mode = boardModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	q := m.query
	q.SearchText = m.searchInput.Value()
	m.setQuery(q)
	return m, cmd
}

func (m BoardModel) openPrompt(p PromptModel) (BoardModel, tea.Cmd) {
	p.width, p.height = m.width, m.height
	m.prompt = &p
	m.mode = boardModePrompt
	return m, p.Init()
}

func (m BoardModel) updatePrompt(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	p, cmd, done := m.prompt.Update(msg)
	m.prompt = &p
	if !done {
		return m, cmd
	}

	m.mode = boardModeNormal
	m.prompt = nil
	if !p.Confirmed() {
		return m, nil
	}
	return m.applyPrompt(p.kind, p.Value()), nil
}

func (m BoardModel) applyPrompt(kind promptKind, value string) BoardModel {
	switch kind {
	case promptNewCard:
		col, ok := m.currentColumn()
		if !ok {
			return m
		}
		card, err := m.svc.AddCard(m.ctx, col.ID, models.Card{Title: value})
		if err != nil {
			m.err = err
			return m
		}
		m.Refresh()
		if !m.selectCard(card.ID) {
			m.message = "Card added (hidden by filter)"
			return m
		}
		m.message = "Card added"

	case promptNewColumn:
		col, err := m.svc.AddColumn(m.ctx, value)
		if err != nil {
			m.err = err
			return m
		}
		m.Refresh()
		if i := m.view.ColumnIndex(col.ID); i >= 0 {
			m.focusColumn(i)
		}
		m.message = "Column added"

	case promptRenameColumn:
		col, ok := m.currentColumn()
		if !ok {
			return m
		}
		if err := m.svc.RenameColumn(m.ctx, col.ID, value); err != nil {
			m.err = err
			return m
		}
		m.Refresh()
		m.message = "Column renamed"

	case promptEditTitle:
		card, ok := m.currentCard()
		if !ok {
			return m
		}
		card.Title = value
		if err := m.svc.UpdateCard(m.ctx, card); err != nil {
			m.err = err
			return m
		}
		m.Refresh()
		m.message = "Card updated"

	case promptDueDate:
		card, ok := m.currentCard()
		if !ok {
			return m
		}
		if value == "" {
			card = operations.WithDueDate(card, nil)
		} else {
			d, err := operations.ParseDueInput(value, m.now())
			if err != nil {
				m.err = err
				return m
			}
			card = operations.WithDueDate(card, &d)
		}
		if err := m.svc.UpdateCard(m.ctx, card); err != nil {
			m.err = err
			return m
		}
		m.Refresh()
		m.message = "Due date updated"

	case promptExtendDate:
		card, ok := m.currentCard()
		if !ok {
			return m
		}
		d, _ := operations.ParseDueInput(value, m.now())
		m = m.extend(card, d)
	}
	return m
}

// validateDue builds a prompt validator for due-date input
func (m BoardModel) validateDue(allowEmpty bool) func(string) (string, error) {
	return func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			if allowEmpty {
				return "", nil
			}
			return "", fmt.Errorf("enter a date")
		}
		if _, err := operations.ParseDueInput(s, m.now()); err != nil {
			return "", err
		}
		return s, nil
	}
}

func (m BoardModel) editTitle() (BoardModel, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	return m.openPrompt(NewPromptModel(promptEditTitle, "Edit title", card.Title, "title", operations.ValidateCardTitle))
}

func (m BoardModel) openConfirm(c ConfirmationModal) (BoardModel, tea.Cmd) {
	m.confirm = &c
	m.mode = boardModeConfirm
	return m, nil
}

func (m BoardModel) updateConfirm(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	answered, yes := m.confirm.Update(msg)
	if !answered {
		return m, nil
	}
	c := *m.confirm
	m.confirm = nil
	m.mode = boardModeNormal
	if !yes {
		return m, nil
	}

	var err error
	switch c.action {
	case confirmDeleteCard:
		err = m.svc.DeleteCard(m.ctx, c.targetID)
		m.message = "Card deleted"
	case confirmArchiveColumn:
		err = m.svc.ArchiveAllCards(m.ctx, c.targetID)
		m.message = "Cards archived"
	case confirmDeleteColumn:
		err = m.svc.DeleteColumn(m.ctx, c.targetID)
		m.message = "Column deleted"
	}
	if err != nil {
		m.SetError(err)
		return m, nil
	}
	m.Refresh()
	return m, nil
}

func (m BoardModel) updateTagEdit(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	picker, cmd, done := m.tagPicker.Update(msg)
	m.tagPicker = &picker
	if !done {
		return m, cmd
	}

	m.mode = boardModeNormal
	m.tagPicker = nil
	if !picker.Confirmed() {
		return m, nil
	}

	ids, newNames := picker.Selection()
	for _, name := range newNames {
		color := models.TagPalette[len(m.board.Tags)%len(models.TagPalette)]
		tag, err := m.svc.AddTag(m.ctx, models.Tag{Name: name, Color: color})
		if err != nil {
			m.SetError(err)
			m.Refresh()
			return m, nil
		}
		m.board.Tags = append(m.board.Tags, tag)
		ids = append(ids, tag.ID)
	}
	if err := m.svc.SetCardTags(m.ctx, picker.CardID(), ids); err != nil {
		m.SetError(err)
	} else {
		m.message = "Tags updated"
	}
	m.Refresh()
	return m, nil
}

func (m BoardModel) updatePriorityInput(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	p, done := m.priorityInput.Update(msg)
	m.priorityInput = &p
	if !done {
		return m, nil
	}

	m.mode = boardModeNormal
	m.priorityInput = nil
	card, ok := m.currentCard()
	if !p.Confirmed() || !ok || card.Priority == p.Priority() {
		return m, nil
	}
	card.Priority = p.Priority()
	if err := m.svc.UpdateCard(m.ctx, card); err != nil {
		m.SetError(err)
		return m, nil
	}
	m.Refresh()
	m.message = "Priority set to " + string(card.Priority)
	return m, nil
}

func (m BoardModel) acknowledge() BoardModel {
	card, ok := m.currentCard()
	if !ok {
		return m
	}
	st := due.ClassifyCard(card, m.now())
	switch {
	case st.Kind != due.Overdue:
		m.message = "Card is not overdue"
		return m
	case st.Acknowledged:
		m.message = "Already acknowledged"
		return m
	}
	if err := m.svc.AcknowledgeOverdue(m.ctx, card.ID); err != nil {
		m.SetError(err)
		return m
	}
	m.Refresh()
	m.message = "Overdue acknowledged"
	return m
}

func (m BoardModel) openExtend() (BoardModel, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	p := NewExtendPickerModel(card)
	m.extendPicker = &p
	m.mode = boardModeExtend
	return m, nil
}

func (m BoardModel) updateExtend(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	p, done := m.extendPicker.Update(msg)
	m.extendPicker = &p
	if !done {
		return m, nil
	}

	m.mode = boardModeNormal
	m.extendPicker = nil
	card, ok := m.currentCard()
	switch {
	case !ok:
		return m, nil
	case p.custom:
		initial := operations.SuggestExtension(card).String()
		return m.openPrompt(NewPromptModel(promptExtendDate, "Extend to", initial, "2006-01-02, +3d", m.validateDue(false)))
	case p.confirmed:
		return m.extend(card, p.NewDue()), nil
	}
	return m, nil
}

func (m BoardModel) extend(card models.Card, d models.DueDate) BoardModel {
	if err := m.svc.ExtendDueDate(m.ctx, card.ID, d); err != nil {
		m.SetError(err)
		return m
	}
	m.Refresh()
	m.message = "Due " + d.String()
	return m
}

func (m BoardModel) updateFind(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	f, cmd, done := m.finder.Update(msg)
	m.finder = &f
	if !done {
		return m, cmd
	}

	m.mode = boardModeNormal
	m.finder = nil
	match := f.Chosen()
	if match == nil {
		return m, nil
	}
	if !m.selectCard(match.Card.ID) {
		// hidden by the filter
		m.setQuery(filter.Query{Priority: filter.PriorityAll})
		m.selectCard(match.Card.ID)
		m.message = "Filters cleared"
	}
	return m, nil
}

func (m BoardModel) updateDetail(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch {
	case msg.String() == "esc" || msg.String() == "q" || key.Matches(msg, m.keys.Detail):
		m.mode = boardModeNormal
		m.detailCardID = ""
	case key.Matches(msg, m.keys.EditTitle):
		m.mode = boardModeNormal
		return m.editTitle()
	case key.Matches(msg, m.keys.Acknowledge):
		m = m.acknowledge()
	case key.Matches(msg, m.keys.Extend):
		m.mode = boardModeNormal
		return m.openExtend()
	}
	return m, nil
}

func (m BoardModel) moveColumn(delta int) BoardModel {
	col, ok := m.currentColumn()
	target := m.selectedCol + delta
	if !ok || target < 0 || target >= len(m.board.Columns) {
		return m
	}
	if err := m.svc.MoveColumn(m.ctx, col.ID, target); err != nil {
		m.SetError(err)
		return m
	}
	m.Refresh()
	m.focusColumn(target)
	return m
}

// cycleTagFilter steps through: no tag filter, then each tag in turn
func (m *BoardModel) cycleTagFilter() {
	if len(m.board.Tags) == 0 {
		m.message = "No tags on this board"
		return
	}

	next := 0
	if len(m.query.TagIDs) == 1 {
		next = m.board.TagIndex(m.query.TagIDs[0]) + 1
	}

	q := m.query
	if next >= len(m.board.Tags) {
		q.TagIDs = nil
		m.message = "Tag filter off"
	} else {
		q.TagIDs = []string{m.board.Tags[next].ID}
		m.message = "Tag filter: #" + m.board.Tags[next].Name
	}
	m.setQuery(q)
}

// cyclePriorityFilter steps through all, high, medium, low
func (m *BoardModel) cyclePriorityFilter() {
	i := 0
	for j, p := range priorityCycle {
		if p == m.query.Priority {
			i = j
		}
	}
	q := m.query
	q.Priority = priorityCycle[(i+1)%len(priorityCycle)]
	m.setQuery(q)
	m.message = "Priority filter: " + string(q.Priority)
}

func (m *BoardModel) setQuery(q filter.Query) {
	m.query = q
	m.view = m.svc.Filtered(q)
	for i := range m.columnCursorPos {
		m.columnCursorPos[i] = 0
		m.columnScrollOffsets[i] = 0
	}
	m.selectedCard = 0
	m.clampCursors()
}

func (m BoardModel) View() string {
	switch {
	case m.mode == boardModeTagEdit && m.tagPicker != nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.tagPicker.View())
	case m.mode == boardModePriorityInput && m.priorityInput != nil:
		return m.priorityInput.View()
	case m.mode == boardModePrompt && m.prompt != nil:
		return m.prompt.View()
	case m.mode == boardModeConfirm && m.confirm != nil:
		return m.confirm.View(m.width, m.height)
	case m.mode == boardModeExtend && m.extendPicker != nil:
		return m.extendPicker.View(m.width, m.height)
	case m.mode == boardModeFind && m.finder != nil:
		return m.finder.View(m.width, m.height)
	case m.mode == boardModeDetail:
		if card, colID, ok := m.board.CardByID(m.detailCardID); ok {
			col, _ := m.board.ColumnByID(colID)
			return renderDetail(m.board, card, col.Name, m.now(), m.width, m.height)
		}
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.board.Name))
	if m.mode == boardModeMove {
		s.WriteString(" " + modeIndicatorStyle(theme.Warning).Render("[MOVE]"))
	}
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeSearch {
		s.WriteString("  / " + m.searchInput.View())
	} else if !m.query.IsEmpty() {
		s.WriteString("  " + filterIndicatorStyle.Render(m.filterSummary()))
	}
	s.WriteString("\n")

	if len(m.view.Columns) == 0 {
		s.WriteString(shared.CenterWithHints(cardPreviewStyle.Render("This board has no columns."), helpStyle.Render("N: add a column • ?: help"), m.columnHeight()))
		s.WriteString("\n")
		s.WriteString(m.footer())
		return s.String()
	}

	height := m.columnHeight()
	startCol, endCol := m.calculateVisibleColumns()
	views := []string{}

	if startCol > 0 {
		views = append(views, m.renderScrollIndicator("◀", height))
	} else {
		views = append(views, m.renderScrollIndicator(" ", height))
	}
	for i := startCol; i < endCol; i++ {
		views = append(views, m.renderColumn(i, m.view.Columns[i], height))
	}
	if endCol < len(m.view.Columns) {
		views = append(views, m.renderScrollIndicator("▶", height))
	} else {
		views = append(views, m.renderScrollIndicator(" ", height))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	s.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, columns))
	s.WriteString("\n")
	s.WriteString(m.footer())

	return s.String()
}

func (m BoardModel) footer() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.message != "" {
		s.WriteString(successStyle.Render(m.message))
		s.WriteString("\n")
	}

	switch m.mode {
	case boardModeMove:
		s.WriteString(helpStyle.Render("h/l: move to column • j/k: reorder • esc: done"))
	case boardModeSearch:
		s.WriteString(helpStyle.Render("type to search • enter: keep • esc: clear"))
	default:
		s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return s.String()
}

func (m BoardModel) filterSummary() string {
	var parts []string
	if m.query.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.query.SearchText))
	}
	for _, id := range m.query.TagIDs {
		if tag, ok := m.board.TagByID(id); ok {
			parts = append(parts, "#"+tag.Name)
		}
	}
	if p := m.query.Priority; p != "" && p != filter.PriorityAll {
		parts = append(parts, "priority "+string(p))
	}
	return "Filter: " + strings.Join(parts, ", ") + " (esc clears)"
}

func (m BoardModel) renderColumn(index int, col models.Column, fixedHeight int) string {
	var s strings.Builder

	total := len(col.Cards)
	if full, ok := m.board.ColumnByID(col.ID); ok {
		total = len(full.Cards)
	}
	title := col.Name
	if len(col.Cards) != total {
		title += fmt.Sprintf(" (%d/%d)", len(col.Cards), total)
	} else {
		title += fmt.Sprintf(" (%d)", total)
	}

	headStyle := columnTitleStyle
	style := columnStyle
	if index == m.selectedCol {
		headStyle = selectedColumnTitleStyle
		style = selectedColumnStyle
	}
	s.WriteString(headStyle.Render(title))
	s.WriteString("\n\n")

	cards := col.Cards
	if len(cards) == 0 {
		s.WriteString(cardPreviewStyle.Render("(empty)"))
		s.WriteString("\n")
		return style.Height(fixedHeight).Render(s.String())
	}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = m.columnScrollOffsets[index]
	}

	if scrollOffset > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▲ +%d cards above", scrollOffset)))
	}
	s.WriteString("\n\n")

	available := fixedHeight - 8
	rendered, used := 0, 0
	for i := scrollOffset; i < len(cards); i++ {
		view := m.renderCard(index, i, cards[i])
		h := lipgloss.Height(view)
		if rendered > 0 && used+h > available {
			break
		}
		s.WriteString(view)
		s.WriteString("\n")
		rendered++
		used += h
	}

	if below := len(cards) - scrollOffset - rendered; below > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▼ +%d cards below", below)))
	}

	return style.Height(fixedHeight).Render(s.String())
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) string {
	maxWidth := columnWidth - (2 * columnPaddingHorizontal) - cardBorderWidth - (2 * cardPaddingHorizontal)
	selected := colIndex == m.selectedCol && cardIndex == m.selectedCard

	var lines []string

	badge := priorityBadge(card.Priority)
	tStyle := cardTitleStyle
	pStyle := priorityStyle(string(card.Priority))
	if selected {
		tStyle = tStyle.Background(theme.Surface)
		pStyle = pStyle.Background(theme.Surface)
	}
	lines = append(lines, pStyle.Render(badge+" ")+tStyle.Render(truncate(card.Title, maxWidth-lipgloss.Width(badge)-1)))

	if preview := card.Preview(maxWidth); preview != "" {
		lines = append(lines, cardPreviewStyle.Render(truncate(preview, maxWidth)))
	}

	st := due.ClassifyCard(card, m.now())
	if line := dueLine(card, m.now()); line != "" {
		lines = append(lines, line)
	}

	if tags := m.board.ResolveTags(card); len(tags) > 0 {
		var parts []string
		width := 0
		for _, tag := range tags {
			label := "#" + tag.Name
			if width+len(label) > maxWidth {
				parts = append(parts, cardPreviewStyle.Render("…"))
				break
			}
			parts = append(parts, theme.TagColor(tag.Color).Render(label))
			width += len(label) + 1
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	style := cardStyle
	switch {
	case selected && m.mode == boardModeMove:
		style = moveSelectedCardStyle
	case selected:
		style = selectedCardStyle
	}
	if c, ok := theme.DueBorder(st); ok && !(selected && m.mode == boardModeMove) {
		style = style.BorderForeground(c)
	}

	return style.Render(strings.Join(lines, "\n"))
}

// priorityBadge is the one-character priority marker shown before a title
func priorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "!"
	case models.PriorityLow:
		return "·"
	}
	return "-"
}

func (m *BoardModel) currentColumn() (models.Column, bool) {
	if m.selectedCol < 0 || m.selectedCol >= len(m.view.Columns) {
		return models.Column{}, false
	}
	return m.view.Columns[m.selectedCol], true
}

func (m *BoardModel) currentCard() (models.Card, bool) {
	cards := m.visibleCards(m.selectedCol)
	if m.selectedCard < 0 || m.selectedCard >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.selectedCard], true
}

// visibleCards returns the filtered cards of a column
func (m *BoardModel) visibleCards(colIndex int) []models.Card {
	if colIndex < 0 || colIndex >= len(m.view.Columns) {
		return nil
	}
	return m.view.Columns[colIndex].Cards
}

// selectCard moves the cursor to a visible card, reporting whether it was found
func (m *BoardModel) selectCard(id string) bool {
	for ci, col := range m.view.Columns {
		if i := col.CardIndex(id); i >= 0 {
			m.selectedCol = ci
			m.selectedCard = i
			m.columnCursorPos[ci] = i
			m.adjustScrollPosition()
			m.adjustHorizontalScrollPosition()
			return true
		}
	}
	return false
}

func (m *BoardModel) focusColumn(i int) {
	m.selectedCol = i
	m.selectedCard = m.columnCursorPos[i]
	if n := len(m.visibleCards(i)); m.selectedCard >= n {
		m.selectedCard = max(0, n-1)
		m.columnCursorPos[i] = m.selectedCard
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// syncArrays resizes the per-column cursor state after columns change
func (m *BoardModel) syncArrays() {
	n := len(m.view.Columns)
	if len(m.columnScrollOffsets) != n {
		offsets := make([]int, n)
		copy(offsets, m.columnScrollOffsets)
		m.columnScrollOffsets = offsets
	}
	if len(m.columnCursorPos) != n {
		pos := make([]int, n)
		copy(pos, m.columnCursorPos)
		m.columnCursorPos = pos
	}
}

// clampCursors keeps the selection inside the visible board
func (m *BoardModel) clampCursors() {
	if len(m.view.Columns) == 0 {
		m.selectedCol, m.selectedCard = 0, 0
		return
	}
	if m.selectedCol >= len(m.view.Columns) {
		m.selectedCol = len(m.view.Columns) - 1
	}
	if n := len(m.visibleCards(m.selectedCol)); m.selectedCard >= n {
		m.selectedCard = max(0, n-1)
	}
	m.columnCursorPos[m.selectedCol] = m.selectedCard
	if m.columnHorizontalOffset >= len(m.view.Columns) {
		m.columnHorizontalOffset = max(0, len(m.view.Columns)-1)
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

func (m *BoardModel) columnHeight() int {
	h := m.height - boardHeaderLines - statusLines - marginLines
	if h < minColumnHeight {
		h = minColumnHeight
	}
	return h
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.view.Columns) {
		return
	}
	cards := m.visibleCards(m.selectedCol)
	if len(cards) == 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
		return
	}

	available := m.columnHeight() - 8
	offset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < offset {
		offset = m.selectedCard
	} else {
		fits, used := 0, 0
		for i := offset; i < len(cards); i++ {
			h := lipgloss.Height(m.renderCard(m.selectedCol, i, cards[i]))
			if fits > 0 && used+h > available {
				break
			}
			used += h
			fits++
		}
		fits = max(fits, 1)
		if m.selectedCard >= offset+fits {
			offset = m.selectedCard - fits + 1
		}
	}

	m.columnScrollOffsets[m.selectedCol] = min(max(offset, 0), len(cards)-1)
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	const (
		columnTotalWidth = columnWidth + 6
		indicatorWidth   = 5
	)

	startCol = m.columnHorizontalOffset
	visibleCount := max((m.width-2*indicatorWidth)/columnTotalWidth, 1)

	endCol = min(startCol+visibleCount, len(m.view.Columns))
	if endCol <= startCol && len(m.view.Columns) > 0 {
		endCol = startCol + 1
	}
	return startCol, endCol
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m *BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicator := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Bold(true).
		Render(symbol)
	return lipgloss.NewStyle().
		Width(3).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	if len(m.view.Columns) == 0 {
		return
	}

	startCol, endCol := m.calculateVisibleColumns()
	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}
	if m.selectedCol >= endCol {
		m.columnHorizontalOffset = max(m.selectedCol-(endCol-startCol)+1, 0)
	}
}
