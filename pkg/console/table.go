package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableConfig describes a table to render.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders cfg with borders on a terminal and as space-aligned
// columns otherwise.
func RenderTable(cfg TableConfig) string {
	if len(cfg.Headers) == 0 && len(cfg.Rows) == 0 {
		return ""
	}

	var b strings.Builder
	if cfg.Title != "" {
		b.WriteString(FormatHeader(cfg.Title) + "\n")
	}

	if isTTY() {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(mutedStyle).
			Headers(cfg.Headers...).
			Rows(cfg.Rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		b.WriteString(t.Render() + "\n")
		return b.String()
	}

	widths := columnWidths(cfg)
	if len(cfg.Headers) > 0 {
		b.WriteString(formatRow(cfg.Headers, widths) + "\n")
		rule := make([]string, len(widths))
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		b.WriteString(formatRow(rule, widths) + "\n")
	}
	for _, row := range cfg.Rows {
		b.WriteString(formatRow(row, widths) + "\n")
	}
	return b.String()
}

func columnWidths(cfg TableConfig) []int {
	n := len(cfg.Headers)
	for _, row := range cfg.Rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(cfg.Headers)
	for _, row := range cfg.Rows {
		measure(row)
	}
	return widths
}

// formatRow pads every cell but the last to its column width.
func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
	}
	return b.String()
}
