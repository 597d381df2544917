package itemlist

import (
	"fmt"
	"strings"

	"mercari-cli/internal/i18n"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	cursorMarker = "▌ "
	rowIndent    = "  "
	// linesPerRow 包含行间空行。
	linesPerRow = 4
)

var (
	nameStyle     = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))
	imageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	emptyStyle    = lipgloss.NewStyle().Faint(true)
)

// renderRows 渲染全部行，返回内容以及选中行的首尾行号。
func renderRows(rows Rows, cursor int, labels i18n.Labels, width int) (string, int, int) {
	if len(rows) == 0 {
		return emptyStyle.Render(labels.Empty), 0, 0
	}
	textWidth := width - runewidth.StringWidth(rowIndent)
	lines := make([]string, 0, len(rows)*linesPerRow)
	top, bottom := 0, 0
	for i, row := range rows {
		prefix := rowIndent
		if i == cursor {
			prefix = markerStyle.Render(cursorMarker)
			top = len(lines)
			bottom = top + linesPerRow - 2
		}
		lines = append(lines,
			prefix+imageStyle.Render(clip(fmt.Sprintf("%s: %s", labels.Image, row.ImageURL), textWidth)),
			rowIndent+nameStyle.Render(clip(fmt.Sprintf("%s: %s", labels.Name, row.Name), textWidth)),
			rowIndent+categoryStyle.Render(clip(fmt.Sprintf("%s: %s", labels.Category, row.Category), textWidth)),
		)
		if i < len(rows)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n"), top, bottom
}

// clip 按显示宽度截断，兼容全角字符。
func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
