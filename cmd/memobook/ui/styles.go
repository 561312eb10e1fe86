// Package ui provides the visual styling shared by memobook's commands and
// the interactive menu.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary = lipgloss.Color("#8BC34A") // Lime green
	ColorAccent  = lipgloss.Color("#2196F3") // Blue
	ColorMuted   = lipgloss.Color("#6c7a89")
	ColorError   = lipgloss.Color("#e53935")
	ColorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used across the CLI.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultStyles returns the memobook styling.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Success: lipgloss.NewStyle().Foreground(ColorPrimary),
		Hint:    lipgloss.NewStyle().Foreground(ColorAccent),
	}
}
