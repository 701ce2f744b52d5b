package operations

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kanban/internal/kanban/models"
)

// ErrValidation is returned by the Validate* helpers. The board operations
// themselves accept any input; callers validate before invoking them.
var ErrValidation = errors.New("validation failed")

const (
	maxNameLength  = 50
	maxTitleLength = 200
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColumnName checks if column name is valid (trim, length check)
func ValidateColumnName(name string) (string, error) {
	return validateName("column name", name, maxNameLength)
}

// ValidateCardTitle trims the title and rejects empty or oversized values
func ValidateCardTitle(title string) (string, error) {
	return validateName("card title", title, maxTitleLength)
}

// ValidateTagName trims the name and rejects empty or oversized values
func ValidateTagName(name string) (string, error) {
	return validateName("tag name", name, maxNameLength)
}

// ValidateTagColor accepts "#rrggbb" colors
func ValidateTagColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if !hexColor.MatchString(color) {
		return "", fmt.Errorf("%w: tag color %q must look like #rrggbb", ErrValidation, color)
	}
	return strings.ToLower(color), nil
}

func validateName(what, value string, limit int) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrValidation, what)
	}

	if len([]rune(trimmed)) > limit {
		return "", fmt.Errorf("%w: %s too long (max %d characters)", ErrValidation, what, limit)
	}

	return trimmed, nil
}

// ExtendOption is a quick-extend preset for overdue cards
type ExtendOption struct {
	Label string
	Days  int
}

// ExtendOptions are offered when extending a due date
var ExtendOptions = []ExtendOption{
	{Label: "Tomorrow", Days: 1},
	{Label: "3 days", Days: 3},
	{Label: "1 week", Days: 7},
	{Label: "2 weeks", Days: 14},
}

// SuggestExtension returns the default new due date for a card: one week
// after its current due date, or one week from today if it has none.
func SuggestExtension(card models.Card) models.DueDate {
	return ExtendBy(card, 7)
}

// ExtendBy shifts the card's due date by days, as a calendar date
func ExtendBy(card models.Card, days int) models.DueDate {
	if card.DueDate == nil {
		return models.NewDate(now()).AddDays(days)
	}
	return models.NewDate(card.DueDate.Time).AddDays(days)
}

// ParseDueInput reads a due date typed by a user: "today", "tomorrow",
// "+Nd" relative to at, or anything models.ParseDueDate accepts.
func ParseDueInput(s string, at time.Time) (models.DueDate, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return models.NewDate(at), nil
	case "tomorrow":
		return models.NewDate(at).AddDays(1), nil
	}
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		if days, err := strconv.Atoi(strings.TrimSuffix(rest, "d")); err == nil {
			if days < 0 {
				return models.DueDate{}, fmt.Errorf("%w: due date %q: days must not be negative", ErrValidation, s)
			}
			return models.NewDate(at).AddDays(days), nil
		}
	}
	d, err := models.ParseDueDate(s)
	if err != nil {
		return models.DueDate{}, fmt.Errorf("%w: due date %q", ErrValidation, s)
	}
	return d, nil
}
