package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Colors is the subset of a theme components draw with
type Colors struct {
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
	Inverse    lipgloss.AdaptiveColor
	InverseFg  lipgloss.AdaptiveColor
}

// DefaultColors matches the default landing theme
func DefaultColors() Colors {
	return Colors{
		Foreground: lipgloss.AdaptiveColor{Light: "#111111", Dark: "#F9FAFB"},
		Muted:      lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Border:     lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
		Background: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"},
		Accent:     lipgloss.AdaptiveColor{Light: "#A0785A", Dark: "#DEB887"},
		Selected:   lipgloss.AdaptiveColor{Light: "#FFE4D7", Dark: "#6F4E37"},
		Inverse:    lipgloss.AdaptiveColor{Light: "#111111", Dark: "#F5F5F5"},
		InverseFg:  lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"},
	}
}

// Fade blends fg into bg. Opacity 1 is fg itself, 0 is indistinguishable
// from the background.
func Fade(fg, bg lipgloss.AdaptiveColor, opacity float64) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: blendHex(bg.Light, fg.Light, opacity),
		Dark:  blendHex(bg.Dark, fg.Dark, opacity),
	}
}

// blendHex mixes two hex colors in Lab space. Unparseable input returns to.
func blendHex(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	switch {
	case t <= 0:
		return a.Hex()
	case t >= 1:
		return b.Hex()
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
