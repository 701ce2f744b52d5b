package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a card
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the known priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority parses a priority name (case-insensitive)
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
	}
	return p, nil
}

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

// DueDate is either a calendar date ("2006-01-02") or an instant (RFC3339).
// Date-only values are interpreted as midnight UTC and serialize back to
// the date-only form.
type DueDate struct {
	time.Time
	DateOnly bool
}

// NewDate returns a date-only DueDate for the calendar day of t
func NewDate(t time.Time) DueDate {
	return DueDate{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// ParseDueDate accepts "2006-01-02", RFC3339, or a local "2006-01-02T15:04:05"
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return DueDate{Time: t, DateOnly: true}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DueDate{Time: t}, nil
	}
	if t, err := time.ParseInLocation(localTimeLayout, s, time.Local); err == nil {
		return DueDate{Time: t}, nil
	}
	return DueDate{}, fmt.Errorf("invalid due date %q", s)
}

// String formats the date in its persisted form
func (d DueDate) String() string {
	if d.DateOnly {
		return d.Time.Format(dateLayout)
	}
	return d.Time.Format(time.RFC3339)
}

// AddDays returns the date shifted by n calendar days, keeping its form
func (d DueDate) AddDays(n int) DueDate {
	return DueDate{Time: d.Time.AddDate(0, 0, n), DateOnly: d.DateOnly}
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	// Empty strings are cleared by Normalize
	if strings.TrimSpace(s) == "" {
		*d = DueDate{}
		return nil
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Card is a task unit owned by exactly one column
type Card struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Priority            Priority  `json:"priority"`
	DueDate             *DueDate  `json:"dueDate,omitempty"`
	OverdueAcknowledged bool      `json:"overdueAcknowledged,omitempty"`
	Tags                []string  `json:"tags,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// DueTime returns the due instant, or nil when the card has no due date
func (c Card) DueTime() *time.Time {
	if c.DueDate == nil {
		return nil
	}
	t := c.DueDate.Time
	return &t
}

// HasTag reports whether the card references tagID
func (c Card) HasTag(tagID string) bool {
	for _, t := range c.Tags {
		if t == tagID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no mutable state with c
func (c Card) Clone() Card {
	out := c
	if c.Tags != nil {
		out.Tags = make([]string, len(c.Tags))
		copy(out.Tags, c.Tags)
	}
	if c.DueDate != nil {
		d := *c.DueDate
		out.DueDate = &d
	}
	return out
}

// Preview returns the first line of the description, trimmed to max runes
func (c Card) Preview(max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(c.Description), "\n")
	line = strings.Join(strings.Fields(line), " ")
	r := []rune(line)
	if max > 3 && len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return line
}

// isJSONNull reports whether raw is a JSON null literal
func isJSONNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
