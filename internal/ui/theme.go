package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette used for terminal output.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (prompts, selectors, headings)
	Primary string
	// Secondary is the secondary accent color (numbering, selected options)
	Secondary string

	// Text colors
	Text        string // Primary text
	TextMuted   string // Help text, descriptions
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Warning string // Validation messages
	Error   string // Error messages
	Success string // Confirmation messages

	// CodeStyle is the chroma style used to highlight commands
	CodeStyle string
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		CodeStyle:   "monokai",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		CodeStyle:   "nord",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		CodeStyle:   "dracula",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Success:     "#16A34A",
		CodeStyle:   "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeLight,
	}
}

// IsTheme reports whether name is a built-in theme.
func IsTheme(name string) bool {
	_, ok := BuiltinThemes[ThemeName(name)]
	return ok
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

func hex(s string) color.Color {
	return lipgloss.Color(s)
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = hex(t.Primary)
	ColorSecondary = hex(t.Secondary)
	ColorText = hex(t.Text)
	ColorTextMuted = hex(t.TextMuted)
	ColorTextInverse = hex(t.TextInverse)
	ColorWarning = hex(t.Warning)
	ColorError = hex(t.Error)
	ColorSuccess = hex(t.Success)

	buildStyles()
}
