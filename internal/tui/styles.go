package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#E50914")
	mutedColor   = lipgloss.Color("#8A8A8A")
	goldColor    = lipgloss.Color("#F5C518")
	successColor = lipgloss.Color("#2ECC71")
	errorColor   = lipgloss.Color("#FF4D4F")

	brandStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	heroStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	ratingStyle = lipgloss.NewStyle().Foreground(goldColor)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(primaryColor).Bold(true).Underline(true)

	cursorStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(goldColor).
			Padding(1, 2)

	successToastStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorToastStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)
