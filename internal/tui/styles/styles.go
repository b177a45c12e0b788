// Package styles provides shared lipgloss styles for console and TUI output.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette. Notification colors match the web client's toast colors.
var (
	Primary   = lipgloss.Color("4")   // Blue
	Secondary = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
	Highlight = lipgloss.Color("12")  // Bright blue
	Muted     = lipgloss.Color("245")

	Success = lipgloss.Color("#4CAF50")
	Error   = lipgloss.Color("#f44336")
	Info    = lipgloss.Color("#2196F3")
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	InfoText = lipgloss.NewStyle().
			Foreground(Info)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	HelpText = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)
)

// Component styles.
var (
	Focused = lipgloss.NewStyle().
		Foreground(Highlight)

	Unfocused = lipgloss.NewStyle().
			Foreground(Secondary)

	Busy = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)
)

// Layout styles.
var (
	Container = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2)

	ResultBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)
)
