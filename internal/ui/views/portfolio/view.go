// Package portfolio renders the resource allocation bar and hypothesis rows.
package portfolio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	hypothesisdto "banditboard/internal/modules/hypothesis/dto"
	"banditboard/internal/ui/theme"
)

// RenderResources draws one coloured run per allocating item. The bar spans
// 100% or the total when overfilled, so shares stay proportional.
func RenderResources(out hypothesisdto.ResourcesOutput, width int) string {
	width = max(width, 20)
	scale := max(out.Total, 100)

	var bar strings.Builder
	used := 0
	for _, seg := range out.Segments {
		n := seg.Resource * width / scale
		if n == 0 {
			n = 1
		}
		n = min(n, width-used)
		if n <= 0 {
			break
		}
		bar.WriteString(theme.StatusStyle(seg.Status).Render(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		bar.WriteString(theme.Muted.Render(strings.Repeat("░", width-used)))
	}

	total := fmt.Sprintf("%d%%", out.Total)
	if out.Overfilled {
		total = theme.Warn.Render(total + " over capacity")
	} else {
		total = theme.Title.Render(total)
	}

	lines := []string{theme.Muted.Render("Total resource allocation ") + total, bar.String()}
	for _, seg := range out.Segments {
		lines = append(lines, fmt.Sprintf("  %s %3d%%  %s", theme.StatusStyle(seg.Status).Render("■"), seg.Resource, seg.IdeaTitle))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

var trendGlyphs = map[string]string{
	"up-sharp": "⇈",
	"up":       "↗",
	"flat":     "→",
	"down":     "↘",
}

// TrendGlyph returns "-" when no trend is available.
func TrendGlyph(trend hypothesisdto.TrendOutput) string {
	if !trend.OK {
		return "-"
	}
	if g, ok := trendGlyphs[trend.Trend]; ok {
		return g
	}
	return "?"
}

// RenderItem formats one hypothesis as a two-line entry.
func RenderItem(item hypothesisdto.ItemOutput) string {
	head := fmt.Sprintf("%s  %s  %s",
		theme.StatusStyle(item.Status).Render("["+item.StatusLabel+"]"),
		theme.Title.Render(item.IdeaTitle),
		item.Hypothesis,
	)
	detail := []string{item.ID, fmt.Sprintf("effort %s", item.EffortLabel), fmt.Sprintf("resource %d%%", item.Resource)}
	if item.Duration != "" {
		detail = append(detail, item.Duration)
	}
	if len(item.Logs) > 0 {
		detail = append(detail, fmt.Sprintf("%d logs", len(item.Logs)))
	}
	return head + "\n  " + theme.Muted.Render(strings.Join(detail, " · "))
}
