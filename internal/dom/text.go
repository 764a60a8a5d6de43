package dom

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/framecore/internal/renderer/core"
)

// nextTabStop returns the next tab stop column after col.
func nextTabStop(col, tabWidth int) int {
	return col + tabWidth - (col % tabWidth)
}

// expandTabs replaces tabs with spaces up to the next tab stop, counting
// display columns rather than bytes.
func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Str() == "\t" {
			stop := nextTabStop(col, tabWidth)
			sb.WriteString(strings.Repeat(" ", stop-col))
			col = stop
			continue
		}
		sb.WriteString(g.Str())
		col += core.StringWidth(g.Str())
	}
	return sb.String()
}

// textLines splits text into display lines with tabs expanded.
func textLines(text string, tabWidth int) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = expandTabs(strings.TrimSuffix(l, "\r"), tabWidth)
	}
	return lines
}

// textSize returns the display width of the widest line and the line count.
func textSize(text string, tabWidth int) (width, height int) {
	lines := textLines(text, tabWidth)
	for _, l := range lines {
		width = max(width, core.StringWidth(l))
	}
	return width, len(lines)
}
