package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- UI Styles ---
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#8942E1"))
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8942E1")).Padding(0, 1)
	pinnedStyle    = headerStyle.Foreground(lipgloss.Color("#3AC4BA"))
	cellStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	cursorStyle    = cellStyle.Background(lipgloss.Color("#2A2B3D"))
	selectedStyle  = cellStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#8942E1"))
	filterRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA")).Italic(true).Padding(0, 1)
	pageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	activePage     = pageStyle.Bold(true).Background(lipgloss.Color("#8942E1"))
	disabledPage   = pageStyle.Foreground(lipgloss.Color("240"))
)

// renderFooter creates a consistent footer across all views
// statusLine: optional status information (shown in subtleStyle)
// helpLines: help text lines (shown in helpStyle)
func renderFooter(statusLine string, helpLines ...string) string {
	var b strings.Builder

	if statusLine != "" {
		b.WriteString(subtleStyle.Render(statusLine) + "\n")
	}

	for _, line := range helpLines {
		b.WriteString(helpStyle.Render(line) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func divider(width int) string {
	return dividerStyle.Render(strings.Repeat("─", max(10, width-2)))
}
