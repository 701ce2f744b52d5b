package messages

import tea "github.com/charmbracelet/bubbletea"

// BoardChangedMsg is sent when the store file was changed by another process
type BoardChangedMsg struct {
	Path    string
	Removed bool
}

// BoardReloadedMsg reports the outcome of reloading the board from the store
type BoardReloadedMsg struct {
	Err error
}

// ShowHelpMsg asks the root model to show the keybinding overlay
type ShowHelpMsg struct{}

// WatchClosedMsg is sent once the watcher's event stream has ended
type WatchClosedMsg struct{}

func ShowHelp() tea.Cmd {
	return func() tea.Msg {
		return ShowHelpMsg{}
	}
}
