package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FeatureCard is a technology card that fades and slides in as the page
// scrolls. Its height is the same at every step of the animation.
type FeatureCard struct {
	Icon        string
	Title       string
	Description string
	Width       int

	opacity        float64
	offsetLines    int
	maxOffsetLines int
	colors         Colors
}

// NewFeatureCard creates a fully visible feature card
func NewFeatureCard(icon, title, description string) *FeatureCard {
	return &FeatureCard{
		Icon:        icon,
		Title:       title,
		Description: description,
		Width:       30,
		opacity:     1,
		colors:      DefaultColors(),
	}
}

// SetAnimation sets the entrance state. offsetLines is clamped to
// [0, maxOffsetLines].
func (f *FeatureCard) SetAnimation(opacity float64, offsetLines, maxOffsetLines int) *FeatureCard {
	f.opacity = opacity
	f.maxOffsetLines = max(maxOffsetLines, 0)
	f.offsetLines = min(max(offsetLines, 0), f.maxOffsetLines)
	return f
}

// SetWidth sets the outer width of the card
func (f *FeatureCard) SetWidth(width int) *FeatureCard {
	f.Width = width
	return f
}

// SetColors sets the palette
func (f *FeatureCard) SetColors(colors Colors) *FeatureCard {
	f.colors = colors
	return f
}

// Opacity returns the current entrance opacity
func (f *FeatureCard) Opacity() float64 {
	return f.opacity
}

// Render renders the feature card
func (f *FeatureCard) Render() string {
	bg := f.colors.Background
	titleStyle := lipgloss.NewStyle().Foreground(Fade(f.colors.Foreground, bg, f.opacity)).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(Fade(f.colors.Muted, bg, f.opacity))
	iconStyle := lipgloss.NewStyle().Foreground(Fade(f.colors.Accent, bg, f.opacity))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Fade(f.colors.Border, bg, f.opacity)).
		Padding(0, 1).
		Width(max(f.Width-2, 10))

	card := boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		iconStyle.Render(f.Icon),
		titleStyle.Render(f.Title),
		"",
		bodyStyle.Render(f.Description),
	))

	if f.maxOffsetLines == 0 {
		return card
	}
	width := lipgloss.Width(card)
	top := blank(width, f.offsetLines)
	bottom := blank(width, f.maxOffsetLines-f.offsetLines)
	parts := make([]string, 0, 3)
	if top != "" {
		parts = append(parts, top)
	}
	parts = append(parts, card)
	if bottom != "" {
		parts = append(parts, bottom)
	}
	return strings.Join(parts, "\n")
}

// FeatureRow lays cards side by side when there is room, stacked otherwise
type FeatureRow struct {
	cards []*FeatureCard
	width int
	gap   int
}

// NewFeatureRow creates a row for the given total width
func NewFeatureRow(width int) *FeatureRow {
	return &FeatureRow{width: width, gap: 2}
}

// AddCard adds a feature card to the row
func (r *FeatureRow) AddCard(card *FeatureCard) {
	r.cards = append(r.cards, card)
}

// Stacked reports whether the cards render one below the other
func (r *FeatureRow) Stacked() bool {
	return len(r.cards) > 1 && r.width/len(r.cards) < 28
}

// Offsets returns the line each card starts at within the rendered row
func (r *FeatureRow) Offsets() []int {
	offsets := make([]int, len(r.cards))
	if !r.Stacked() {
		return offsets
	}
	line := 0
	for i, card := range r.cards {
		offsets[i] = line
		line += lipgloss.Height(card.SetWidth(min(r.width, 60)).Render())
	}
	return offsets
}

// Render renders the row
func (r *FeatureRow) Render() string {
	if len(r.cards) == 0 {
		return ""
	}

	if r.Stacked() {
		rendered := make([]string, len(r.cards))
		for i, card := range r.cards {
			rendered[i] = lipgloss.PlaceHorizontal(r.width, lipgloss.Center, card.SetWidth(min(r.width, 60)).Render())
		}
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}

	cardWidth := (r.width - r.gap*(len(r.cards)-1)) / len(r.cards)
	spacer := strings.Repeat(" ", r.gap)
	parts := make([]string, 0, len(r.cards)*2)
	for i, card := range r.cards {
		if i > 0 {
			parts = append(parts, spacer)
		}
		parts = append(parts, card.SetWidth(cardWidth).Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
