package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban/internal/config"
	"kanban/internal/kanban/service"
	"kanban/internal/logs"
	"kanban/internal/tui/kanban"
	"kanban/internal/tui/messages"
	"kanban/internal/tui/shared"
	"kanban/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model: the board view plus status bar, help overlay
// and live reload.
type AppModel struct {
	ctx       context.Context
	cfg       *config.Config
	svc       service.BoardService
	watcher   *watch.Watcher
	now       func() time.Time
	boardView kanban.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model. w may be nil when live
// reload is disabled.
func NewAppModel(ctx context.Context, cfg *config.Config, svc service.BoardService, w *watch.Watcher) AppModel {
	return AppModel{
		ctx:       ctx,
		cfg:       cfg,
		svc:       svc,
		watcher:   w,
		now:       time.Now,
		boardView: kanban.NewBoardModel(ctx, svc),
	}
}

func (m AppModel) Init() tea.Cmd {
	return waitForChange(m.watcher)
}

// waitForChange blocks on the next watcher event
func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.BoardChangedMsg{Path: ev.Path, Removed: ev.Removed}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-3) // status bar
		return m, nil

	case messages.BoardChangedMsg:
		logs.Logger.Printf("TUI: store changed on disk: %s (removed=%v)", msg.Path, msg.Removed)
		return m, tea.Batch(m.reload(), waitForChange(m.watcher))

	case messages.BoardReloadedMsg:
		if msg.Err != nil {
			m.boardView.SetError(fmt.Errorf("reload: %w", msg.Err))
			return m, nil
		}
		m.boardView.Refresh()
		return m, nil

	case messages.WatchClosedMsg:
		logs.Logger.Println("TUI: watcher closed")
		return m, nil

	case messages.ShowHelpMsg:
		m.showHelp = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

// reload re-reads the board from the store
func (m AppModel) reload() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return messages.BoardReloadedMsg{Err: svc.Reload(ctx)}
	}
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(kanban.HelpSections(), m.width, m.height)
	}

	statusBar := statusBarStyle.Width(m.width).Render(m.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

// statusLine shows the store, the due summary and the help hint
func (m AppModel) statusLine() string {
	var parts []string

	source := m.cfg.Backend + ":" + m.svc.Key()
	if m.watcher != nil {
		source += " (live)"
	}
	parts = append(parts, hintStyle.Render(source))

	sum := m.svc.Due(m.now())
	if sum.Overdue > 0 {
		parts = append(parts, statusOverdueStyle.Render(fmt.Sprintf("%d overdue", sum.Overdue)))
	}
	if sum.Acknowledged > 0 {
		parts = append(parts, statusAckStyle.Render(fmt.Sprintf("%d acknowledged", sum.Acknowledged)))
	}
	if sum.DueSoon > 0 {
		parts = append(parts, statusSoonStyle.Render(fmt.Sprintf("%d due soon", sum.DueSoon)))
	}

	parts = append(parts, hintStyle.Render("?:help | q:quit"))
	return strings.Join(parts, hintStyle.Render(" | "))
}
