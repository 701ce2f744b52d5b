// Package due classifies cards by due date relative to the current time.
package due

import (
	"time"

	"kanban/internal/kanban/models"
)

// Window is how far ahead a due date counts as due soon
const Window = 24 * time.Hour

// Kind is the coarse due-date state of a card
type Kind int

const (
	None Kind = iota
	DueSoon
	Overdue
)

func (k Kind) String() string {
	switch k {
	case DueSoon:
		return "due-soon"
	case Overdue:
		return "overdue"
	default:
		return "none"
	}
}

// Status is the derived due-date state. Acknowledged is only meaningful
// for Overdue.
type Status struct {
	Kind         Kind
	Acknowledged bool
}

// Label is a short human-readable form of the status
func (s Status) Label() string {
	switch s.Kind {
	case Overdue:
		if s.Acknowledged {
			return "Overdue (acknowledged)"
		}
		return "Overdue"
	case DueSoon:
		return "Due soon"
	}
	return ""
}

// Classify derives the status of a due date at now. Nothing is cached:
// callers re-evaluate on every render.
func Classify(dueDate *time.Time, acknowledged bool, now time.Time) Status {
	if dueDate == nil {
		return Status{Kind: None}
	}
	if dueDate.Before(now) {
		return Status{Kind: Overdue, Acknowledged: acknowledged}
	}
	if dueDate.Before(now.Add(Window)) {
		return Status{Kind: DueSoon}
	}
	return Status{Kind: None}
}

// ClassifyCard classifies a card's due date at now
func ClassifyCard(card models.Card, now time.Time) Status {
	return Classify(card.DueTime(), card.OverdueAcknowledged, now)
}

// Summary counts cards per due state across a board
type Summary struct {
	Overdue      int
	Acknowledged int
	DueSoon      int
}

// Summarize classifies every card on the board at now
func Summarize(board models.Board, now time.Time) Summary {
	var s Summary
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			st := ClassifyCard(card, now)
			switch {
			case st.Kind == Overdue && st.Acknowledged:
				s.Acknowledged++
			case st.Kind == Overdue:
				s.Overdue++
			case st.Kind == DueSoon:
				s.DueSoon++
			}
		}
	}
	return s
}
