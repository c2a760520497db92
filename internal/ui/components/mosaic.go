package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SkinTones is the mosaic palette, lightest to darkest
var SkinTones = []string{
	"#FFE4D7",
	"#FFDAB9",
	"#FFDEAD",
	"#DEB887",
	"#CDAA7D",
	"#C19A6B",
	"#A0785A",
	"#8B6445",
	"#6F4E37",
}

// mosaicOpacity matches the translucent tiles of the banner
const mosaicOpacity = 0.8

// Mosaic is a banner of skin-tone tiles that shade diagonally from light
// to dark across the terminal.
type Mosaic struct {
	Width  int
	Rows   int
	Glyph  string
	colors Colors
}

// NewMosaic creates a banner of the given size
func NewMosaic(width, rows int) *Mosaic {
	return &Mosaic{Width: width, Rows: rows, Glyph: "●", colors: DefaultColors()}
}

// SetColors sets the palette
func (m *Mosaic) SetColors(colors Colors) *Mosaic {
	m.colors = colors
	return m
}

// ToneAt returns the palette index for a tile. Progress runs along the
// diagonal so each row is shifted half a step.
func (m *Mosaic) ToneAt(col, row int) int {
	cols := max(m.Width/2, 1)
	progress := (float64(col) + float64(row)/2) / (float64(cols) + float64(m.Rows)/2)
	idx := int(progress * float64(len(SkinTones)))
	return min(max(idx, 0), len(SkinTones)-1)
}

// Render renders the banner
func (m *Mosaic) Render() string {
	if m.Width <= 0 || m.Rows <= 0 {
		return ""
	}

	styles := make([]lipgloss.Style, len(SkinTones))
	for i, tone := range SkinTones {
		c := lipgloss.AdaptiveColor{Light: tone, Dark: tone}
		styles[i] = lipgloss.NewStyle().Foreground(Fade(c, m.colors.Background, mosaicOpacity))
	}

	cols := m.Width / 2
	lines := make([]string, m.Rows)
	for row := 0; row < m.Rows; row++ {
		var b strings.Builder
		if row%2 == 1 {
			b.WriteString(" ")
		}
		// Render runs of equal tone with one style call
		start := 0
		for col := 1; col <= cols; col++ {
			if col < cols && m.ToneAt(col, row) == m.ToneAt(start, row) {
				continue
			}
			run := strings.TrimSuffix(strings.Repeat(m.Glyph+" ", col-start), " ")
			if start > 0 {
				b.WriteString(" ")
			}
			b.WriteString(styles[m.ToneAt(start, row)].Render(run))
			start = col
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}
