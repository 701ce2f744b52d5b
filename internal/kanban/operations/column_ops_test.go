package operations

import (
	"testing"
	"time"

	"kanban/internal/kanban/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnIDs(b models.Board) []string {
	ids := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		ids[i] = c.ID
	}
	return ids
}

func TestAddColumn(t *testing.T) {
	b := models.DefaultBoard()

	out, col, err := AddColumn(b, "Review")
	require.NoError(t, err)

	require.Len(t, out.Columns, 4)
	assert.Equal(t, col, out.Columns[3])
	assert.Equal(t, "Review", col.Name)
	assert.NotNil(t, col.Cards)
	assert.Empty(t, col.Cards)
	assert.Len(t, b.Columns, 3)

	out2, col2, err := AddColumn(out, "Review")
	require.NoError(t, err)
	assert.NotEqual(t, col.ID, col2.ID)
	assert.True(t, models.IsValidBoard(out2))
}

func TestAddColumn_EmptyNameIsAccepted(t *testing.T) {
	out, col, err := AddColumn(models.DefaultBoard(), "")
	require.NoError(t, err)
	assert.Equal(t, "", col.Name)
	assert.Len(t, out.Columns, 4)
}

func TestRenameColumn(t *testing.T) {
	b := models.DefaultBoard()
	out, err := RenameColumn(b, "done", "Shipped")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", out.Columns[2].Name)
	assert.Equal(t, "Done", b.Columns[2].Name)

	_, err = RenameColumn(b, "nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteColumn_RemovesCards(t *testing.T) {
	b := boardWithCards()

	out, err := DeleteColumn(b, "todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"in-progress", "done"}, columnIDs(out))
	assert.Equal(t, 2, out.CardCount())
	ci, _ := out.FindCard("a")
	assert.Equal(t, -1, ci)

	same, err := DeleteColumn(b, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, b, same)
}

func TestMoveColumn(t *testing.T) {
	b := models.DefaultBoard()
	b, _, _ = AddColumn(b, "Review")
	reviewID := b.Columns[3].ID

	tests := []struct {
		name     string
		id       string
		newIndex int
		want     []string
	}{
		{"to front", "done", 0, []string{"done", "todo", "in-progress", reviewID}},
		{"to back", "todo", 3, []string{"in-progress", "done", reviewID, "todo"}},
		{"clamped", "todo", 42, []string{"in-progress", "done", reviewID, "todo"}},
		{"negative", reviewID, -1, []string{reviewID, "todo", "in-progress", "done"}},
		{"in place", "in-progress", 1, []string{"todo", "in-progress", "done", reviewID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MoveColumn(b, tt.id, tt.newIndex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, columnIDs(out))
			assert.Equal(t, []string{"todo", "in-progress", "done", reviewID}, columnIDs(b))
		})
	}

	_, err := MoveColumn(b, "nope", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveAllCards_Idempotent(t *testing.T) {
	b := boardWithCards()

	once, err := ArchiveAllCards(b, "todo")
	require.NoError(t, err)
	twice, err := ArchiveAllCards(once, "todo")
	require.NoError(t, err)

	assert.Empty(t, once.Columns[0].Cards)
	assert.Equal(t, once, twice)
	assert.Len(t, b.Columns[0].Cards, 5)
	assert.Equal(t, []string{"x", "y"}, cardIDs(once.Columns[2]))

	_, err = ArchiveAllCards(b, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidators(t *testing.T) {
	name, err := ValidateColumnName("  Review ")
	require.NoError(t, err)
	assert.Equal(t, "Review", name)

	_, err = ValidateColumnName("   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateCardTitle("")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateTagName(string(make([]rune, 51)))
	assert.ErrorIs(t, err, ErrValidation)

	color, err := ValidateTagColor("#EF4444")
	require.NoError(t, err)
	assert.Equal(t, "#ef4444", color)

	_, err = ValidateTagColor("red")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDueInput(t *testing.T) {
	at := time.Date(2024, 6, 10, 21, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2024-06-10"},
		{" Tomorrow ", "2024-06-11"},
		{"+3d", "2024-06-13"},
		{"+14", "2024-06-24"},
		{"2024-07-01", "2024-07-01"},
		{"2024-07-01T09:00:00Z", "2024-07-01T09:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDueInput(tt.in, at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}

	for _, in := range []string{"next week", "+-3", "+-3d"} {
		_, err := ParseDueInput(in, at)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}
