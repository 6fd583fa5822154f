package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF7CCB")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FDFF8C"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8E6A1"))

	dueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8888"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))
)

func renderTitle(s string) string {
	return titleStyle.Render(s)
}

// renderTable pads each column to its widest cell. The first row is
// treated as the header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			padding := widths[i] - lipgloss.Width(cell)
			cells[i] = cell + strings.Repeat(" ", padding)
		}
		line := strings.Join(cells, "  ")
		if r == 0 {
			line = headerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func plural(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
