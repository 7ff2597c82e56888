package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable renders rows as aligned plain-text columns. Column
// widths follow the widest cell, measured in display cells so that
// wide runes line up.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(formatRow(headers, widths, rightAlign))
	for _, row := range rows {
		b.WriteString(formatRow(row, widths, rightAlign))
	}
	return b.String()
}

func formatRow(cells []string, widths []int, rightAlign map[int]bool) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padCell(cell, widths[i], rightAlign[i])
	}
	return strings.TrimRight(strings.Join(parts, " "), " ") + "\n"
}

func padCell(value string, width int, right bool) string {
	pad := width - displayWidth(value)
	if pad <= 0 {
		return value
	}
	if right {
		return strings.Repeat(" ", pad) + value
	}
	return value + strings.Repeat(" ", pad)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
