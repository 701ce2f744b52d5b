package cli

import (
	"context"
	"fmt"

	"kanban/internal/logs"
	"kanban/internal/tui"
	"kanban/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// runTUI opens the board view. With watch enabled and a file-backed store,
// edits made by other processes are reloaded live.
func (a *app) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var w *watch.Watcher
	if path := a.svc.WatchPath(); a.cfg.Watch && path != "" {
		var err error
		if w, err = watch.New(path, watch.DefaultDebounce); err == nil {
			if err = w.Start(ctx); err != nil {
				w.Stop()
			}
		}
		if err != nil {
			logs.Logger.Printf("Warning: live reload disabled: %v", err)
			w = nil
		} else {
			defer w.Stop()
		}
	}

	logs.Logger.Println("Starting app in TUI mode")
	p := tea.NewProgram(tui.NewAppModel(ctx, a.cfg, a.svc, w), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
