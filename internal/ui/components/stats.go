package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatCard is one statistic on the home page. Hidden cards keep their
// footprint so the layout does not move while the row fills in.
type StatCard struct {
	Value       string
	Highlight   string
	Description string
	Revealed    bool
	Width       int
	colors      Colors
}

// NewStatCard creates a new stat card
func NewStatCard(value, highlight, description string) *StatCard {
	return &StatCard{
		Value:       value,
		Highlight:   highlight,
		Description: description,
		Width:       34,
		colors:      DefaultColors(),
	}
}

// SetRevealed marks the card as disclosed
func (s *StatCard) SetRevealed(revealed bool) *StatCard {
	s.Revealed = revealed
	return s
}

// SetWidth sets the outer width of the card
func (s *StatCard) SetWidth(width int) *StatCard {
	s.Width = width
	return s
}

// SetColors sets the palette
func (s *StatCard) SetColors(colors Colors) *StatCard {
	s.colors = colors
	return s
}

// Render renders the stat card
func (s *StatCard) Render() string {
	valueStyle := lipgloss.NewStyle().Foreground(s.colors.Accent).Bold(true)
	highlightStyle := lipgloss.NewStyle().Foreground(s.colors.Foreground).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(s.colors.Muted)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colors.Border).
		Padding(0, 1).
		Width(max(s.Width-2, 10))

	card := boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		valueStyle.Render(s.Value),
		highlightStyle.Render(s.Highlight),
		bodyStyle.Render(s.Description),
	))

	if s.Revealed {
		return card
	}
	return blank(lipgloss.Width(card), lipgloss.Height(card))
}

// StatGrid lays cards out two per row with any remainder centered below
type StatGrid struct {
	cards []*StatCard
	width int
	gap   int
}

// NewStatGrid creates a grid for the given total width
func NewStatGrid(width int) *StatGrid {
	return &StatGrid{width: width, gap: 2}
}

// AddCard adds a stat card to the grid
func (g *StatGrid) AddCard(card *StatCard) {
	g.cards = append(g.cards, card)
}

// Render renders the grid
func (g *StatGrid) Render() string {
	if len(g.cards) == 0 {
		return ""
	}

	columns := 2
	if g.width < 60 {
		columns = 1
	}
	cardWidth := (g.width - g.gap*(columns-1)) / columns
	spacer := strings.Repeat(" ", g.gap)

	var rows []string
	for i := 0; i < len(g.cards); i += columns {
		end := min(i+columns, len(g.cards))
		var row []string
		for j, card := range g.cards[i:end] {
			if j > 0 {
				row = append(row, spacer)
			}
			row = append(row, card.SetWidth(cardWidth).Render())
		}
		rows = append(rows, lipgloss.PlaceHorizontal(g.width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, row...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// blank returns a block of spaces with the given size
func blank(width, height int) string {
	if height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", max(width, 0))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
