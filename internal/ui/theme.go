// Package ui provides terminal output styling and non-interactive mode
// detection for the shed CLI.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ThemeColors holds the color palette used across UI components.
type ThemeColors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
}

// Theme bundles the palette, derived lipgloss styles, and the NoColor
// toggle used by every rendered component.
type Theme struct {
	Colors  ThemeColors
	NoColor bool

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme creates the default shed theme.
func NewTheme(noColor bool) *Theme {
	colors := ThemeColors{
		Primary:   "#7C3AED",
		Secondary: "#06B6D4",
		Success:   "#22C55E",
		Error:     "#EF4444",
		Warning:   "#F59E0B",
		Muted:     "#6B7280",
	}

	t := &Theme{Colors: colors, NoColor: noColor}
	if noColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Success, t.Error, t.Warning, t.Muted = plain, plain, plain, plain, plain
		return t
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Primary))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Success))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Error))
	t.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Warning))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Muted))
	return t
}
