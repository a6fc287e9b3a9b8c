// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/store"
)

// FormatTask formats a task row.
// Format: "{N:>4}  [{MARK}]  {TITLE}\n" with the description, when present,
// indented on its own line beneath the title.
func FormatTask(w io.Writer, num int, task store.Task) {
	mark := ' '
	if task.Completed {
		mark = 'x'
	}
	fmt.Fprintf(w, "%4d  [%c]  %s\n", num, mark, normalizeTitle(task.Title))
	if task.Description != nil {
		fmt.Fprintf(w, "           %s\n", normalizeLine(*task.Description))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeLine replaces newlines with spaces.
func normalizeLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
