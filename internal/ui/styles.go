package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, regenerated by SetTheme.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Output styles
var (
	// GreetingStyle renders the one-time banner.
	GreetingStyle lipgloss.Style

	// HeadingStyle renders "Description:" and "Command:" labels.
	HeadingStyle lipgloss.Style

	// IndexStyle renders the description numbering.
	IndexStyle lipgloss.Style

	// DescriptionStyle renders description text.
	DescriptionStyle lipgloss.Style

	// CommandStyle renders the command when highlighting is unavailable.
	CommandStyle lipgloss.Style

	// ErrorLabelStyle and ErrorStyle render reported errors.
	ErrorLabelStyle lipgloss.Style
	ErrorStyle      lipgloss.Style

	// SpinnerStyle and SpinnerLabelStyle render the progress indicator.
	SpinnerStyle      lipgloss.Style
	SpinnerLabelStyle lipgloss.Style

	// HintStyle renders secondary notes such as "copied to clipboard".
	HintStyle lipgloss.Style
)

func init() {
	regenerateStyles()
}

// buildStyles derives every style from the color palette.
func buildStyles() {
	GreetingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	HeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	IndexStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	DescriptionStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	CommandStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	ErrorLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	SpinnerLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Bold(true)

	HintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
}
