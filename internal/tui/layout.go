package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	maxContentW = 120
	cellGapW    = 2
)

// columnWidths splits total into cols widths separated by gap columns. Any remainder
// goes to the leftmost cells.
func columnWidths(total, cols, gap int) []int {
	if cols < 1 {
		cols = 1
	}
	avail := total - gap*(cols-1)
	if avail < cols {
		avail = cols
	}
	out := make([]int, cols)
	for i := range out {
		out[i] = avail / cols
		if i < avail%cols {
			out[i]++
		}
	}
	return out
}

// fitCell forces s to be exactly width columns wide (ANSI-aware) on every line, and at
// least height lines tall. Over-wide lines are cut with an ellipsis.
func fitCell(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, ln := range lines {
		// Bound the width computation on huge lines.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Cut(ln, 0, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// joinCells lays rendered cells side by side with equal heights.
func joinCells(cells []string, widths []int, gap int) string {
	if len(cells) == 0 {
		return ""
	}
	h := 0
	for _, c := range cells {
		if n := lipgloss.Height(c); n > h {
			h = n
		}
	}
	parts := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			parts = append(parts, fitCell("", gap, h))
		}
		parts = append(parts, fitCell(c, widths[i], h))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
