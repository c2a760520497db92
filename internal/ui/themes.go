package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme represents a color theme for the landing TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor

	// Inverse is used for the pre-order card and buttons
	Inverse   lipgloss.AdaptiveColor
	InverseFg lipgloss.AdaptiveColor
}

// buildTheme creates a theme from [light, dark] pairs
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, background, foreground, muted, selected, inverse, inverseFg [2]string) Theme {
	adaptive := func(c [2]string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
	}
	return Theme{
		Name:       name,
		Primary:    adaptive(primary),
		Secondary:  adaptive(secondary),
		Accent:     adaptive(accent),
		Success:    adaptive(success),
		Warning:    adaptive(warning),
		Error:      adaptive(errorColor),
		Border:     adaptive(border),
		Background: adaptive(background),
		Foreground: adaptive(foreground),
		Muted:      adaptive(muted),
		Selected:   adaptive(selected),
		Inverse:    adaptive(inverse),
		InverseFg:  adaptive(inverseFg),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#111111", "#F5F5F5"}, [2]string{"#4B5563", "#9CA3AF"}, [2]string{"#A0785A", "#DEB887"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#FFFFFF", "#111111"}, [2]string{"#111111", "#F9FAFB"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#FFE4D7", "#6F4E37"}, [2]string{"#111111", "#F5F5F5"},
		[2]string{"#FFFFFF", "#111111"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"}, [2]string{"#000080", "#FFFF00"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#FFFFFF", "#000000"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#333333", "#DDDDDD"}, [2]string{"#FFFF00", "#444444"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#FFFFFF", "#000000"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#FFFFFF", "#1A202C"}, [2]string{"#2D3748", "#F7FAFC"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"}, [2]string{"#2D3748", "#E2E8F0"},
		[2]string{"#F7FAFC", "#1A202C"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// SetColorMode applies auto|always|never to lipgloss rendering
func SetColorMode(mode string) {
	switch {
	case mode == "never" || IsColorDisabled():
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// GetStyles builds the common styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Brand: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Align(lipgloss.Center),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Align(lipgloss.Center),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		// Navigation
		NavItem: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Selected).
			Bold(true).
			Padding(0, 1),

		// Buttons
		Button: lipgloss.NewStyle().
			Foreground(theme.InverseFg).
			Background(theme.Inverse).
			Bold(true).
			Padding(0, 3),

		// Layout
		Rule: lipgloss.NewStyle().
			Foreground(theme.Border),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		InversePanel: lipgloss.NewStyle().
			Foreground(theme.InverseFg).
			Background(theme.Inverse).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Brand    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	Button lipgloss.Style

	Rule         lipgloss.Style
	Panel        lipgloss.Style
	InversePanel lipgloss.Style
}
