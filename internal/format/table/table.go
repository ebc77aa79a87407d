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

const gap = "  "

// Format pads rows so every column is as wide as its widest cell. Cells may
// carry ANSI styling; widths are measured in terminal cells.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				b.WriteString(gap)
			}
			pad := widths[c] - ansi.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = b.String()
	}
	return out
}

// Fit formats rows and truncates each line to width cells.
func Fit(rows [][]string, alignments []Alignment, width int) []string {
	lines := Format(rows, alignments)
	if width <= 0 {
		return lines
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return lines
}

func columnWidths(rows [][]string) []int {
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
	return widths
}
