package components

import (
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []rune("◐◓◑◒")

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render(style lipgloss.Style) string {
	spinner := style.Render(string(spinnerFrames[s.Frame%len(spinnerFrames)]))
	if s.Label != "" {
		return spinner + " " + s.Label
	}
	return spinner
}

// Dialog is the "not launched" notice shown instead of a real checkout
type Dialog struct {
	Message string
	Action  string
	Width   int
	Spinner *Spinner
	colors  Colors
}

// NewDialog creates a dialog with the given copy
func NewDialog(message, action string) *Dialog {
	return &Dialog{
		Message: message,
		Action:  action,
		Width:   44,
		Spinner: NewSpinner(),
		colors:  DefaultColors(),
	}
}

// SetColors sets the palette
func (d *Dialog) SetColors(colors Colors) *Dialog {
	d.colors = colors
	return d
}

// Render renders the dialog
func (d *Dialog) Render() string {
	inner := max(d.Width-8, 10)

	spinnerStyle := lipgloss.NewStyle().Foreground(d.colors.Accent).Bold(true)
	messageStyle := lipgloss.NewStyle().
		Foreground(d.colors.Foreground).
		Width(inner).
		Align(lipgloss.Center)
	buttonStyle := lipgloss.NewStyle().
		Foreground(d.colors.InverseFg).
		Background(d.colors.Inverse).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.colors.Foreground).
		Padding(1, 3)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		d.Spinner.Render(spinnerStyle),
		"",
		messageStyle.Render(d.Message),
		"",
		buttonStyle.Render(d.Action),
	)

	return boxStyle.Render(content)
}
