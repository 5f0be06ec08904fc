package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format pads rows so every column lines up with its widest cell. Rows may
// be ragged; missing cells count as empty. Trailing padding is dropped.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				b.WriteString(columnGap)
			}
			pad := strings.Repeat(" ", widths[c]-ansi.StringWidth(cell))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}
