package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under headers with the shared table styles.
// Columns listed in rightAlign are right aligned.
func RenderTable(headers []string, rows [][]string, rightAlign ...int) string {
	right := make(map[int]bool, len(rightAlign))
	for _, col := range rightAlign {
		right[col] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := TableCellStyle
			if row == table.HeaderRow {
				style = TableHeaderStyle
			}
			if right[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return t.Render()
}
