package kanban

import (
	"context"
	"strings"
	"testing"
	"time"

	"kanban/internal/kanban/filter"
	"kanban/internal/kanban/models"
	"kanban/internal/kanban/service"
	"kanban/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T) (BoardModel, service.BoardService) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc, err := service.NewBoardService(context.Background(), st, "board")
	require.NoError(t, err)

	m := NewBoardModel(context.Background(), svc)
	m.now = func() time.Time { return testNow }
	m.SetSize(160, 40)
	return m, svc
}

func addCard(t *testing.T, svc service.BoardService, colID string, card models.Card) models.Card {
	t.Helper()
	out, err := svc.AddCard(context.Background(), colID, card)
	require.NoError(t, err)
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m BoardModel, keys ...string) BoardModel {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func typeText(m BoardModel, s string) BoardModel {
	for _, r := range s {
		m = press(m, string(r))
	}
	return m
}

func cardTitles(col models.Column) []string {
	titles := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		titles[i] = c.Title
	}
	return titles
}

func TestNewCard(t *testing.T) {
	m, svc := newTestBoard(t)

	m = press(m, "n")
	require.Equal(t, boardModePrompt, m.mode)
	m = typeText(m, "Groceries")
	m = press(m, "enter")

	assert.Equal(t, boardModeNormal, m.mode)
	assert.Equal(t, []string{"Groceries"}, cardTitles(svc.Board().Columns[0]))
	assert.Equal(t, "Card added", m.message)

	card, ok := m.currentCard()
	require.True(t, ok)
	assert.Equal(t, "Groceries", card.Title)
	assert.Equal(t, models.PriorityMedium, card.Priority)
}

func TestNewCard_EmptyTitleKeepsPromptOpen(t *testing.T) {
	m, svc := newTestBoard(t)

	m = press(m, "n", "enter")
	assert.Equal(t, boardModePrompt, m.mode)
	assert.NotEmpty(t, m.prompt.err)

	m = press(m, "esc")
	assert.Equal(t, boardModeNormal, m.mode)
	assert.Empty(t, svc.Board().Columns[0].Cards)
}

func TestEditTitleAndPriority(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Draft"})
	m.Refresh()

	m = press(m, "e", "ctrl+u")
	m = typeText(m, "Final")
	m = press(m, "enter")
	m = press(m, "p", "3", "enter")

	card := svc.Board().Columns[0].Cards[0]
	assert.Equal(t, "Final", card.Title)
	assert.Equal(t, models.PriorityHigh, card.Priority)
}

func TestMoveMode_AcrossColumns(t *testing.T) {
	m, svc := newTestBoard(t)
	a := addCard(t, svc, "todo", models.Card{Title: "A"})
	addCard(t, svc, "in-progress", models.Card{Title: "B"})
	m.Refresh()

	m = press(m, "m", "l")
	board := svc.Board()
	assert.Empty(t, board.Columns[0].Cards)
	assert.Equal(t, []string{"B", "A"}, cardTitles(board.Columns[1]))
	assert.Equal(t, boardModeMove, m.mode)
	assert.Equal(t, 1, m.selectedCol)

	card, ok := m.currentCard()
	require.True(t, ok)
	assert.Equal(t, a.ID, card.ID)

	m = press(m, "l", "esc")
	assert.Equal(t, boardModeNormal, m.mode)
	assert.Equal(t, []string{"A"}, cardTitles(svc.Board().Columns[2]))
}

func TestMoveMode_Reorder(t *testing.T) {
	m, svc := newTestBoard(t)
	for _, title := range []string{"A", "B", "C"} {
		addCard(t, svc, "todo", models.Card{Title: title})
	}
	m.Refresh()
	m.selectedCard = 0

	m = press(m, "m", "j")
	assert.Equal(t, []string{"B", "A", "C"}, cardTitles(svc.Board().Columns[0]))
	assert.Equal(t, 1, m.selectedCard)

	m = press(m, "j")
	assert.Equal(t, []string{"B", "C", "A"}, cardTitles(svc.Board().Columns[0]))

	m = press(m, "j", "k")
	assert.Equal(t, []string{"B", "A", "C"}, cardTitles(svc.Board().Columns[0]))
}

func TestMoveMode_ReorderWithinFilter(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "A", Priority: models.PriorityHigh})
	addCard(t, svc, "todo", models.Card{Title: "B", Priority: models.PriorityLow})
	addCard(t, svc, "todo", models.Card{Title: "C", Priority: models.PriorityHigh})
	m.Refresh()

	m = press(m, "P")
	require.Equal(t, models.PriorityHigh, m.query.Priority)
	require.Equal(t, []string{"A", "C"}, cardTitles(m.view.Columns[0]))

	m = press(m, "m", "j")
	assert.Equal(t, []string{"B", "C", "A"}, cardTitles(svc.Board().Columns[0]))
	assert.Equal(t, []string{"C", "A"}, cardTitles(m.view.Columns[0]))
	assert.Equal(t, 1, m.selectedCard)
}

func TestSearch(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Buy milk"})
	addCard(t, svc, "todo", models.Card{Title: "Call plumber", Description: "the kitchen MILK pipe"})
	addCard(t, svc, "done", models.Card{Title: "Taxes"})
	m.Refresh()

	m = press(m, "/")
	m = typeText(m, "milk")
	assert.Len(t, m.view.Columns[0].Cards, 2)
	assert.Empty(t, m.view.Columns[2].Cards)

	m = press(m, "enter")
	assert.Equal(t, boardModeNormal, m.mode)
	assert.Equal(t, "milk", m.query.SearchText)
	assert.Contains(t, m.View(), `search "milk"`)

	m = press(m, "esc")
	assert.True(t, m.query.IsEmpty())
	assert.Len(t, m.view.Columns[0].Cards, 2)
	assert.Len(t, m.view.Columns[2].Cards, 1)
}

func TestCycleFilters(t *testing.T) {
	m, _ := newTestBoard(t)

	var tags [][]string
	for i := 0; i < 4; i++ {
		m = press(m, "t")
		tags = append(tags, m.query.TagIDs)
	}
	assert.Equal(t, [][]string{{"urgent"}, {"work"}, {"personal"}, nil}, tags)

	var prios []models.Priority
	for i := 0; i < 4; i++ {
		m = press(m, "P")
		prios = append(prios, m.query.Priority)
	}
	assert.Equal(t, []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow, filter.PriorityAll}, prios)
}

func TestAcknowledgeAndExtend(t *testing.T) {
	m, svc := newTestBoard(t)
	yesterday := models.NewDate(testNow).AddDays(-1)
	card := addCard(t, svc, "todo", models.Card{Title: "Rent", DueDate: &yesterday})
	m.Refresh()

	m = press(m, "a")
	got, _, _ := svc.Board().CardByID(card.ID)
	assert.True(t, got.OverdueAcknowledged)
	assert.Equal(t, "Overdue acknowledged", m.message)

	m = press(m, "a")
	assert.Equal(t, "Already acknowledged", m.message)

	m = press(m, "x")
	require.Equal(t, boardModeExtend, m.mode)
	m = press(m, "1")

	got, _, _ = svc.Board().CardByID(card.ID)
	assert.Equal(t, "2024-06-10", got.DueDate.String())
	assert.False(t, got.OverdueAcknowledged)
}

func TestAcknowledge_NotOverdue(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Later"})
	m.Refresh()

	m = press(m, "a")
	assert.Equal(t, "Card is not overdue", m.message)
	assert.False(t, svc.Board().Columns[0].Cards[0].OverdueAcknowledged)
}

func TestDueDatePrompt(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Report"})
	m.Refresh()

	m = press(m, "d")
	m = typeText(m, "+3d")
	m = press(m, "enter")
	card := svc.Board().Columns[0].Cards[0]
	require.NotNil(t, card.DueDate)
	assert.Equal(t, "2024-06-13", card.DueDate.String())

	m = press(m, "d")
	m = typeText(m, "x")
	m = press(m, "enter")
	assert.Equal(t, boardModePrompt, m.mode, "invalid date keeps the prompt open")

	m = press(m, "ctrl+u", "enter")
	assert.Nil(t, svc.Board().Columns[0].Cards[0].DueDate)
}

func TestDueDatePrompt_ClearsAcknowledgment(t *testing.T) {
	m, svc := newTestBoard(t)
	yesterday := models.NewDate(testNow).AddDays(-1)
	addCard(t, svc, "todo", models.Card{Title: "Rent", DueDate: &yesterday, OverdueAcknowledged: true})
	m.Refresh()

	m = press(m, "d", "ctrl+u")
	m = typeText(m, "2024-06-08")
	m = press(m, "enter")

	card := svc.Board().Columns[0].Cards[0]
	require.NotNil(t, card.DueDate)
	assert.Equal(t, "2024-06-08", card.DueDate.String())
	assert.False(t, card.OverdueAcknowledged)
}

func TestApplyDuePrompt_RejectsInvalidInput(t *testing.T) {
	m, svc := newTestBoard(t)
	due := models.NewDate(testNow).AddDays(2)
	addCard(t, svc, "todo", models.Card{Title: "Report", DueDate: &due})
	m.Refresh()

	for _, in := range []string{"someday", "+-3d"} {
		m = m.applyPrompt(promptDueDate, in)
		require.Error(t, m.err, in)
		assert.Equal(t, "2024-06-12", svc.Board().Columns[0].Cards[0].DueDate.String())
	}
}

func TestDeleteCard_Confirm(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Keep?"})
	m.Refresh()

	m = press(m, "D", "n")
	assert.Len(t, svc.Board().Columns[0].Cards, 1)

	m = press(m, "D", "y")
	assert.Empty(t, svc.Board().Columns[0].Cards)
	assert.Equal(t, "Card deleted", m.message)
	_, ok := m.currentCard()
	assert.False(t, ok)
}

func TestArchiveColumn_Confirm(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "One"})
	addCard(t, svc, "todo", models.Card{Title: "Two"})
	m.Refresh()

	m = press(m, "A")
	require.Equal(t, boardModeConfirm, m.mode)
	m = press(m, "y")
	assert.Empty(t, svc.Board().Columns[0].Cards)
	assert.Len(t, svc.Board().Columns, 3)
}

func TestColumns_AddMoveRename(t *testing.T) {
	m, svc := newTestBoard(t)

	m = press(m, "N")
	m = typeText(m, "Review")
	m = press(m, "enter")
	require.Len(t, svc.Board().Columns, 4)
	assert.Equal(t, 3, m.selectedCol)

	m = press(m, "<")
	assert.Equal(t, "Review", svc.Board().Columns[2].Name)
	assert.Equal(t, 2, m.selectedCol)

	m = press(m, "R", "ctrl+u")
	m = typeText(m, "QA")
	m = press(m, "enter")
	assert.Equal(t, "QA", svc.Board().Columns[2].Name)

	m = press(m, "X", "y")
	assert.Len(t, svc.Board().Columns, 3)
}

func TestTagPicker(t *testing.T) {
	m, svc := newTestBoard(t)
	card := addCard(t, svc, "todo", models.Card{Title: "Gym"})
	m.Refresh()

	// items are sorted by name: Personal, Urgent, Work
	m = press(m, "T", " ", "enter")
	got, _, _ := svc.Board().CardByID(card.ID)
	assert.Equal(t, []string{"personal"}, got.Tags)

	m = press(m, "T", "n")
	m = typeText(m, "Health")
	m = press(m, "enter", "enter")

	board := svc.Board()
	require.Len(t, board.Tags, 4)
	assert.Equal(t, "Health", board.Tags[3].Name)
	got, _, _ = board.CardByID(card.ID)
	assert.ElementsMatch(t, []string{"personal", board.Tags[3].ID}, got.Tags)
	assert.Equal(t, "Tags updated", m.message)
}

func TestTagPicker_EscCancels(t *testing.T) {
	m, svc := newTestBoard(t)
	card := addCard(t, svc, "todo", models.Card{Title: "Gym", Tags: []string{"work"}})
	m.Refresh()

	m = press(m, "T", " ", "esc")
	assert.Equal(t, boardModeNormal, m.mode)
	got, _, _ := svc.Board().CardByID(card.ID)
	assert.Equal(t, []string{"work"}, got.Tags)
}

func TestFinderJump(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "Write report"})
	target := addCard(t, svc, "done", models.Card{Title: "Groceries", Priority: models.PriorityLow})
	m.Refresh()

	// hide the target behind a filter first
	m = press(m, "P")
	require.Empty(t, m.view.Columns[2].Cards)

	m = press(m, "f")
	m = typeText(m, "groc")
	m = press(m, "enter")

	card, ok := m.currentCard()
	require.True(t, ok)
	assert.Equal(t, target.ID, card.ID)
	assert.Equal(t, 2, m.selectedCol)
	assert.True(t, m.query.IsEmpty())
}

func TestDetailView(t *testing.T) {
	m, svc := newTestBoard(t)
	due := models.NewDate(testNow).AddDays(-2)
	addCard(t, svc, "todo", models.Card{
		Title:       "Quarterly taxes",
		Description: "File **before** the deadline",
		DueDate:     &due,
		Tags:        []string{"urgent"},
	})
	m.Refresh()

	m = press(m, "enter")
	require.Equal(t, boardModeDetail, m.mode)
	view := m.View()
	assert.Contains(t, view, "Quarterly taxes")
	assert.Contains(t, view, "Overdue")
	assert.Contains(t, view, "#Urgent")
	assert.Contains(t, view, "before")

	m = press(m, "esc")
	assert.Equal(t, boardModeNormal, m.mode)
}

func TestRefresh_KeepsSelection(t *testing.T) {
	m, svc := newTestBoard(t)
	addCard(t, svc, "todo", models.Card{Title: "A"})
	b := addCard(t, svc, "todo", models.Card{Title: "B"})
	m.Refresh()
	m = press(m, "j")

	// another writer inserts a card above the selection
	_, err := svc.AddCard(context.Background(), "todo", models.Card{Title: "C"})
	require.NoError(t, err)
	require.NoError(t, svc.MoveCard(context.Background(), svc.Board().Columns[0].Cards[2].ID, "todo", "todo", 0))
	m.Refresh()

	card, ok := m.currentCard()
	require.True(t, ok)
	assert.Equal(t, b.ID, card.ID)
	assert.Equal(t, 2, m.selectedCard)
}

func TestView_RendersColumnsAndDueState(t *testing.T) {
	m, svc := newTestBoard(t)
	soon := models.NewDate(testNow).AddDays(1)
	addCard(t, svc, "in-progress", models.Card{Title: "Ship it", DueDate: &soon})
	m.Refresh()

	view := m.View()
	assert.Contains(t, view, "My Tasks")
	for _, name := range []string{"To Do (0)", "In Progress (1)", "Done (0)"} {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "Due soon")
	assert.True(t, strings.Contains(view, "(empty)"))
}

func TestMultiSelectPicker_Filter(t *testing.T) {
	p := NewMultiSelectPickerModel(MultiSelectPickerConfig{
		Title:       "Pick",
		ItemNoun:    "tag",
		AllItems:    []string{"work", "home", "errands"},
		AllowCreate: true,
	})
	assert.Equal(t, []string{"errands", "home", "work"}, p.visible)

	for _, k := range []string{"/", "w", "o"} {
		p, _, _ = p.Update(keyMsg(k))
	}
	assert.Equal(t, []string{"work"}, p.visible)
	assert.True(t, p.offerNew, "a partial match can still be created as a new tag")

	p, _, _ = p.Update(keyMsg("x"))
	assert.Empty(t, p.visible)
	assert.True(t, p.offerNew)

	p, _, _ = p.Update(keyMsg("enter"))
	p, _, _ = p.Update(keyMsg(" "))
	var done bool
	p, _, done = p.Update(keyMsg("enter"))
	assert.True(t, done)
	assert.True(t, p.Confirmed())
	assert.Equal(t, []string{"wox"}, p.SelectedItems())
}

func TestMultiSelectPicker_ExactMatchHidesCreate(t *testing.T) {
	p := NewMultiSelectPickerModel(MultiSelectPickerConfig{
		Title:       "Pick",
		ItemNoun:    "tag",
		AllItems:    []string{"work", "home"},
		AllowCreate: true,
	})
	for _, k := range []string{"/", "w", "o", "r", "k"} {
		p, _, _ = p.Update(keyMsg(k))
	}
	assert.Equal(t, []string{"work"}, p.visible)
	assert.False(t, p.offerNew)
}
