package tui

import (
	"kanban/internal/kanban/due"
	"kanban/internal/tui/theme"
)

var (
	statusBarStyle = theme.StatusBar
	hintStyle      = theme.HelpHint

	statusOverdueStyle = theme.Due(due.Status{Kind: due.Overdue})
	statusAckStyle     = theme.Due(due.Status{Kind: due.Overdue, Acknowledged: true})
	statusSoonStyle    = theme.Due(due.Status{Kind: due.DueSoon})
)
