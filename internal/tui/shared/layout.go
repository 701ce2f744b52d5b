package shared

import "strings"

// CenterWithHints centers content vertically in height lines. Non-empty
// hints are pinned to the last lines.
func CenterWithHints(content, hints string, height int) string {
	body := splitLines(content)
	tail := splitLines(hints)

	gap := height - len(body) - len(tail)
	if gap <= 0 {
		return strings.Join(append(body, tail...), "\n")
	}

	top := gap / 2
	lines := make([]string, 0, height)
	lines = append(lines, make([]string, top)...)
	lines = append(lines, body...)
	lines = append(lines, make([]string, gap-top)...)
	lines = append(lines, tail...)
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
