package operations

import (
	"errors"
	"time"

	"kanban/internal/kanban/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation references a column, card or tag
// id that is not on the board. The board returned alongside it is the input.
var ErrNotFound = errors.New("not found")

var now = time.Now

// newID returns "<prefix>-<uuid>", retrying on the (theoretical) collision
// with an id already taken on the board.
func newID(prefix string, taken func(string) bool) string {
	for {
		id := prefix + "-" + uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}

func columnTaken(b models.Board) func(string) bool {
	return func(id string) bool { return b.ColumnIndex(id) >= 0 }
}

func cardTaken(b models.Board) func(string) bool {
	return func(id string) bool {
		ci, _ := b.FindCard(id)
		return ci >= 0
	}
}

func tagTaken(b models.Board) func(string) bool {
	return func(id string) bool { return b.TagIndex(id) >= 0 }
}

// clamp bounds i to [lo, hi]
func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// insertAt returns a new slice with v inserted at index i (0 <= i <= len(s))
func insertAt[T any](s []T, i int, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// removeAt returns a new slice without the element at index i
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// replaceAt returns a new slice with s[i] replaced by v
func replaceAt[T any](s []T, i int, v T) []T {
	out := append([]T(nil), s...)
	out[i] = v
	return out
}
