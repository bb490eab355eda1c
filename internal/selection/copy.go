package selection

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Text extracts the selected text of r from a rendered screen. Each row is
// cut to its segment's columns, stripped of escape sequences and trailing
// blanks.
func Text(screen string, r Range) string {
	lines := strings.Split(screen, "\n")
	out := make([]string, 0, len(r.Rows))
	for _, seg := range r.Rows {
		if seg.Row < 0 || seg.Row >= len(lines) {
			out = append(out, "")
			continue
		}
		cell := ansi.Cut(lines[seg.Row], seg.Start, seg.End+1)
		out = append(out, strings.TrimRight(ansi.Strip(cell), " \t"))
	}
	return strings.Join(out, "\n")
}

// Copy writes the active selection of store, read from screen, to cb. It
// reports whether anything was copied.
func Copy(screen string, store *Store, cb Clipboard) (bool, error) {
	r, ok := store.Active()
	if !ok || len(r.Rows) == 0 {
		return false, nil
	}
	if err := cb.WriteAll(Text(screen, r)); err != nil {
		return false, fmt.Errorf("failed to copy selection %s: %w", r.ID, err)
	}
	return true, nil
}
