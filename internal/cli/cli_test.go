package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kanban/internal/kanban/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env runs commands against a board in a temporary data dir
type env struct {
	t   *testing.T
	dir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"KANBAN_DATA_DIR", "KANBAN_BACKEND", "KANBAN_BOARD_KEY", "KANBAN_WATCH"} {
		t.Setenv(k, "")
	}

	prev := now
	now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	return &env{t: t, dir: filepath.Join(home, "data")}
}

func (e *env) exec(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	code := Execute(append([]string{"--data-dir", e.dir}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// run executes a command that must succeed
func (e *env) run(args ...string) string {
	e.t.Helper()
	out, errOut, code := e.exec(args...)
	require.Equal(e.t, 0, code, "kanban %v: %s", args, errOut)
	return out
}

// addCard adds a card and returns its id
func (e *env) addCard(args ...string) string {
	e.t.Helper()
	out := e.run(append([]string{"card", "add"}, args...)...)
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "ID: "); ok {
			return id
		}
	}
	e.t.Fatalf("no card id in %q", out)
	return ""
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "kanban version "+Version+"\n", e.run("version"))
}

func TestShow_DefaultBoard(t *testing.T) {
	e := newEnv(t)
	out := e.run("show")
	assert.Contains(t, out, "My Tasks")
	assert.Contains(t, out, "## To Do (0) [todo]")
	assert.Contains(t, out, "## Done (0) [done]")
}

func TestCardLifecycle(t *testing.T) {
	e := newEnv(t)

	id := e.addCard("todo", "Buy", "milk", "--priority", "high", "--due", "+1d", "--tag", "urgent")
	out := e.run("show")
	assert.Contains(t, out, "["+id+"] Buy milk (high)")
	assert.Contains(t, out, "#Urgent")
	assert.Contains(t, out, "due 2024-06-11 (Due soon)")

	assert.Contains(t, e.run("card", "mv", id, "done"), "Moved: Buy milk -> Done")
	assert.Contains(t, e.run("show"), "## Done (1) [done]")

	e.run("card", "edit", id, "--title", "Buy oat milk", "-p", "low", "--clear-due")
	e.run("card", "tag", id[:6], "work", "#Personal")

	out = e.run("show", "--tag", "work")
	assert.Contains(t, out, "Buy oat milk (low)")
	assert.Contains(t, out, "#Work")
	assert.Contains(t, out, "#Personal")
	assert.NotContains(t, out, "due ")

	assert.NotContains(t, e.run("show", "-p", "high"), "Buy oat milk")

	assert.Contains(t, e.run("card", "rm", id), "Deleted: Buy oat milk")
	assert.Contains(t, e.run("show"), "## Done (0) [done]")
}

func TestCardAdd_InsertPosition(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "first")
	second := e.addCard("todo", "second")

	e.run("card", "mv", second, "To Do", "1")
	out := e.run("show")
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestCardAckAndExtend(t *testing.T) {
	e := newEnv(t)
	id := e.addCard("in-progress", "Rent", "--due", "2024-06-01")

	assert.Contains(t, e.run("show"), "1 overdue, 0 acknowledged, 0 due soon")

	e.run("card", "ack", id)
	assert.Contains(t, e.run("show"), "0 overdue, 1 acknowledged, 0 due soon")

	assert.Contains(t, e.run("card", "extend", id, "--days", "3"), "-> 2024-06-04")
	assert.Contains(t, e.run("show"), "1 overdue, 0 acknowledged")

	assert.Contains(t, e.run("card", "extend", id), "-> 2024-06-11")
	assert.Contains(t, e.run("card", "extend", id, "--to", "tomorrow"), "-> 2024-06-11")

	_, errOut, code := e.exec("card", "extend", id, "--days=-2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "--days must be positive")
}

func TestCardEditDue_ResetsAcknowledgment(t *testing.T) {
	e := newEnv(t)
	id := e.addCard("todo", "Rent", "--due", "2024-06-01")
	e.run("card", "ack", id)

	e.run("card", "edit", id, "--due", "2024-06-01")
	assert.Contains(t, e.run("show"), "0 overdue, 1 acknowledged", "same date keeps the acknowledgment")

	e.run("card", "edit", id, "--due", "2024-06-05")
	out := e.run("show")
	assert.Contains(t, out, "1 overdue, 0 acknowledged")
	assert.NotContains(t, out, "Overdue (acknowledged)")
}

func TestCardErrors(t *testing.T) {
	e := newEnv(t)

	_, errOut, code := e.exec("card", "add", "nope", "Title")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no column found: nope")

	_, errOut, code = e.exec("card", "add", "todo", "Title", "--due", "someday")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "someday")

	_, errOut, code = e.exec("card", "rm", "does-not-exist")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no card found")
}

func TestColumnCommands(t *testing.T) {
	e := newEnv(t)

	assert.Contains(t, e.run("column", "add", "Review"), "Added column: Review")
	e.run("col", "mv", "review", "1")
	out := e.run("show")
	assert.Less(t, strings.Index(out, "## Review"), strings.Index(out, "## To Do"))

	assert.Contains(t, e.run("column", "rename", "Review", "QA"), "Renamed: Review -> QA")

	e.addCard("QA", "check")
	e.addCard("QA", "verify")
	assert.Contains(t, e.run("column", "archive", "qa"), "Archived 2 cards from QA")
	assert.Contains(t, e.run("column", "rm", "QA"), "Deleted column: QA (0 cards)")
	assert.NotContains(t, e.run("show"), "QA")
}

func TestTagCommands(t *testing.T) {
	e := newEnv(t)

	assert.Contains(t, e.run("tag", "add", "Home", "-c", "#112233"), "Added tag: Home #112233")
	id := e.addCard("todo", "Fix", "sink", "-t", "home")

	out := e.run("tag", "ls")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "1 card(s)")

	e.run("tag", "edit", "home", "--name", "House")
	assert.Contains(t, e.run("show"), "#House")

	e.run("tag", "rm", "#house")
	assert.NotContains(t, e.run("show"), "#House")
	assert.NotContains(t, e.run("tag", "ls"), "House")
	assert.Contains(t, e.run("show"), id)
}

func TestFind(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Quarterly", "taxes")
	e.addCard("done", "Groceries")

	out := e.run("find", "groc")
	assert.Contains(t, out, "Done / ")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "taxes")

	assert.Equal(t, "No cards found.\n", e.run("find", "zzzz"))
}

func TestExportImportJSON(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Keep", "me", "--desc", "with **markdown**")

	path := filepath.Join(t.TempDir(), "board.json")
	assert.Contains(t, e.run("export", "-o", path), "Exported to "+path)

	e.run("reset", "--yes")
	assert.NotContains(t, e.run("show"), "Keep me")

	out := e.run("import", path)
	assert.Equal(t, "Imported \"My Tasks\": 3 columns, 1 cards, 3 tags\n", out)
	assert.Contains(t, e.run("show"), "Keep me")
}

func TestExport_Stdout(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Exported")

	board, err := models.DecodeBoard([]byte(e.run("export")))
	require.NoError(t, err)
	require.Len(t, board.Columns[0].Cards, 1)
	assert.Equal(t, "Exported", board.Columns[0].Cards[0].Title)
}

func TestExport_DirectoryUsesDatedName(t *testing.T) {
	e := newEnv(t)
	dir := t.TempDir()

	e.run("export", "-o", dir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "2024-06-10")
}

func TestImport_RejectsInvalidBoard(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Survivor")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"columns": 5}`), 0644))

	_, _, code := e.exec("import", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, e.run("show"), "Survivor")
}

func TestExportImportMarkdown(t *testing.T) {
	e := newEnv(t)
	e.addCard("in-progress", "Write", "docs", "--desc", "Cover the **CLI**", "-t", "work")

	_, errOut, code := e.exec("export", "-f", "md")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "-o")

	dir := filepath.Join(t.TempDir(), "md")
	e.run("export", "-f", "md", "-o", dir)
	assert.FileExists(t, filepath.Join(dir, "board.md"))

	e.run("reset", "-y")
	e.run("import", dir)

	out := e.run("show")
	assert.Contains(t, out, "## In Progress (1)")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "#Work")
}

func TestReset_RequiresConfirmation(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Precious")

	_, errOut, code := e.exec("reset")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "--yes")
	assert.Contains(t, e.run("show"), "Precious")

	assert.Equal(t, "Board reset.\n", e.run("reset", "--yes"))
	assert.NotContains(t, e.run("show"), "Precious")
}

func TestRoot_ListDefaultView(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Listed")

	cfgDir := filepath.Join(os.Getenv("HOME"), ".config", "kanban")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(`{"default_view": "list"}`), 0644))

	out := e.run()
	assert.Contains(t, out, "My Tasks")
	assert.Contains(t, out, "Listed")
}

func TestBoardKeyIsolation(t *testing.T) {
	e := newEnv(t)
	e.addCard("todo", "Main", "board")

	out := e.run("--key", "other", "show")
	assert.NotContains(t, out, "Main board")
	assert.Contains(t, e.run("show"), "Main board")
}

func TestSQLiteBackend(t *testing.T) {
	e := newEnv(t)
	id := e.addCard("--backend", "sqlite", "todo", "Stored", "in", "sqlite")

	out := e.run("--backend", "sqlite", "show")
	assert.Contains(t, out, "["+id+"] Stored in sqlite")
	assert.NotContains(t, e.run("show"), "Stored in sqlite")
}

func TestResolveCard(t *testing.T) {
	board := models.Board{Columns: []models.Column{
		{ID: "a", Cards: []models.Card{{ID: "abcd1234"}, {ID: "abcd5678"}}},
		{ID: "b", Cards: []models.Card{{ID: "ffff0000"}}},
	}}

	card, col, err := resolveCard(board, "ffff0000")
	require.NoError(t, err)
	assert.Equal(t, "ffff0000", card.ID)
	assert.Equal(t, "b", col)

	card, col, err = resolveCard(board, "abcd5")
	require.NoError(t, err)
	assert.Equal(t, "abcd5678", card.ID)
	assert.Equal(t, "a", col)

	_, _, err = resolveCard(board, "abcd")
	assert.ErrorContains(t, err, "multiple cards")

	_, _, err = resolveCard(board, "fff")
	assert.ErrorContains(t, err, "no card found")
}

func TestResolveColumnAndTag(t *testing.T) {
	board := models.DefaultBoard()

	col, err := resolveColumn(board, "in progress")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", col.ID)

	board.Columns = append(board.Columns, models.Column{ID: "done-2", Name: "Done"})
	_, err = resolveColumn(board, "DONE")
	assert.ErrorContains(t, err, "multiple columns")

	ids, err := resolveTags(board, []string{"#urgent", "Work"})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "work"}, ids)

	_, err = resolveTags(board, []string{"missing"})
	assert.ErrorContains(t, err, "no tag found")
}
