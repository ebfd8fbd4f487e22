package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the console output.

var (
	// Section headers
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	// Message Styles
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Amber
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)

	// Comparison status cells
	regressionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	improvementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)
