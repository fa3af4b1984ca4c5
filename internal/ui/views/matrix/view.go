// Package matrix renders the impact x cost grid for the terminal.
package matrix

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	matrixdto "banditboard/internal/modules/matrix/dto"
	"banditboard/internal/ui/theme"
)

const (
	minCellWidth = 12
	cellLines    = 3
)

// Render draws impact 5..1 top to bottom and cost 1..5 left to right. Each
// cell lists up to three titles; the rest are summarised as "+N".
func Render(out matrixdto.MatrixOutput, width int) string {
	cellWidth := max(minCellWidth, (width-8)/5-2)
	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellLines).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Surface1)

	rows := make([]string, 0, 7)
	if out.Title != "" {
		rows = append(rows, theme.Title.Render(out.Title))
	}
	for impact := 5; impact >= 1; impact-- {
		cells := []string{theme.Muted.Render(fmt.Sprintf("I%d ", impact))}
		for cost := 1; cost <= 5; cost++ {
			cells = append(cells, cell.Render(renderCell(out.Cells[impact-1][cost-1], cellWidth)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, cells...))
	}

	axis := []string{"   "}
	for cost := 1; cost <= 5; cost++ {
		axis = append(axis, lipgloss.NewStyle().Width(cellWidth+2).Align(lipgloss.Center).Render(theme.Muted.Render(fmt.Sprintf("C%d", cost))))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, axis...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(items []matrixdto.MatrixCell, width int) string {
	lines := make([]string, 0, cellLines)
	for i, item := range items {
		if i == cellLines-1 && len(items) > cellLines {
			lines = append(lines, theme.Muted.Render(fmt.Sprintf("+%d more", len(items)-i)))
			break
		}
		lines = append(lines, theme.ZoneStyle(item.Zone).Render(clip(item.Title, width)))
	}
	return strings.Join(lines, "\n")
}

func clip(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
