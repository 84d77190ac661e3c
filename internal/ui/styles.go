package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared by all CLI output.
const (
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
)

var (
	// PromptStyle renders the "$" in front of echoed commands.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// OptionsStyle renders the environment overlay after an echoed command.
	OptionsStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// FailureStyle is for the message printed when a subprocess fails.
	FailureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
