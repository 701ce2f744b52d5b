package tui

import (
	"context"
	"testing"
	"time"

	"kanban/internal/config"
	"kanban/internal/kanban/models"
	"kanban/internal/kanban/service"
	"kanban/internal/store"
	"kanban/internal/tui/messages"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (AppModel, service.BoardService, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewFileStore(dir)
	require.NoError(t, err)
	svc, err := service.NewBoardService(context.Background(), st, "board")
	require.NoError(t, err)

	m := NewAppModel(context.Background(), &config.Config{Backend: config.BackendFile}, svc, nil)
	m.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return next.(AppModel), svc, dir
}

func TestApp_ReloadsExternalChanges(t *testing.T) {
	m, svc, dir := newTestApp(t)

	// a second process writing the same board
	other, err := store.NewFileStore(dir)
	require.NoError(t, err)
	otherSvc, err := service.NewBoardService(context.Background(), other, "board")
	require.NoError(t, err)
	_, err = otherSvc.AddCard(context.Background(), "todo", models.Card{Title: "From elsewhere"})
	require.NoError(t, err)

	assert.Empty(t, svc.Board().Columns[0].Cards)

	_, cmd := m.Update(messages.BoardChangedMsg{Path: svc.WatchPath()})
	require.NotNil(t, cmd)

	msg := m.reload()()
	reloaded, ok := msg.(messages.BoardReloadedMsg)
	require.True(t, ok)
	require.NoError(t, reloaded.Err)

	next, _ := m.Update(reloaded)
	m = next.(AppModel)
	assert.Len(t, svc.Board().Columns[0].Cards, 1)
	assert.Contains(t, m.View(), "From elsewhere")
}

func TestApp_StatusLine(t *testing.T) {
	m, svc, _ := newTestApp(t)
	past := models.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	_, err := svc.AddCard(context.Background(), "todo", models.Card{Title: "Late", DueDate: &past})
	require.NoError(t, err)

	line := m.statusLine()
	assert.Contains(t, line, "file:board")
	assert.Contains(t, line, "1 overdue")
	assert.NotContains(t, line, "(live)")
}

func TestApp_HelpOverlay(t *testing.T) {
	m, _, _ := newTestApp(t)

	next, _ := m.Update(messages.ShowHelpMsg{})
	m = next.(AppModel)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Filter")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(AppModel)
	assert.False(t, m.showHelp)
}

func TestApp_ViewBeforeResize(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc, err := service.NewBoardService(context.Background(), st, "board")
	require.NoError(t, err)

	m := NewAppModel(context.Background(), &config.Config{Backend: config.BackendFile}, svc, nil)
	assert.Equal(t, "Loading...", m.View())
	assert.Nil(t, m.Init())
}
