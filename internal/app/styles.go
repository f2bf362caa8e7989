package app

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)
