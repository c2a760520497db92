package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
)

func TestFadeEndpoints(t *testing.T) {
	fg := lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}
	bg := lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}

	assert.Equal(t, "#000000", Fade(fg, bg, 1).Light)
	assert.Equal(t, "#ffffff", Fade(fg, bg, 0).Light)
	assert.Equal(t, "#ffffff", Fade(fg, bg, 1.5).Dark)
	assert.Equal(t, "#000000", Fade(fg, bg, -1).Dark)

	mid := Fade(fg, bg, 0.5).Light
	assert.NotEqual(t, "#000000", mid)
	assert.NotEqual(t, "#ffffff", mid)
}

func TestFadeInvalidColor(t *testing.T) {
	fg := lipgloss.AdaptiveColor{Light: "red", Dark: "#ffffff"}
	bg := lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "not-a-color"}

	faded := Fade(fg, bg, 0.5)
	assert.Equal(t, "red", faded.Light)
	assert.Equal(t, "#ffffff", faded.Dark)
}

func TestStatCardKeepsFootprintWhenHidden(t *testing.T) {
	card := NewStatCard("11.7%", "Critical Oversight", "Nearly 1 in 8 readings hide low oxygen").SetWidth(30)

	shown := card.SetRevealed(true).Render()
	hidden := card.SetRevealed(false).Render()

	assert.Contains(t, shown, "11.7%")
	assert.NotContains(t, hidden, "11.7%")
	assert.Equal(t, lipgloss.Width(shown), lipgloss.Width(hidden))
	assert.Equal(t, lipgloss.Height(shown), lipgloss.Height(hidden))
}

func TestStatGridColumns(t *testing.T) {
	grid := NewStatGrid(80)
	for _, v := range []string{"3x", "11.7%", "3.56%"} {
		grid.AddCard(NewStatCard(v, "h", "d").SetRevealed(true))
	}
	wide := grid.Render()

	narrow := NewStatGrid(40)
	for _, v := range []string{"3x", "11.7%", "3.56%"} {
		narrow.AddCard(NewStatCard(v, "h", "d").SetRevealed(true))
	}

	assert.Less(t, lipgloss.Height(wide), lipgloss.Height(narrow.Render()))
	assert.Empty(t, NewStatGrid(80).Render())
}

func TestFeatureCardHeightIsStable(t *testing.T) {
	card := NewFeatureCard("*", "Custom Calibration", "Adapts to every skin tone").SetWidth(30)

	heights := map[int]bool{}
	for _, step := range []struct {
		opacity float64
		offset  int
	}{{0, 2}, {0.5, 1}, {1, 0}} {
		heights[lipgloss.Height(card.SetAnimation(step.opacity, step.offset, 2).Render())] = true
	}
	assert.Len(t, heights, 1)
	assert.Equal(t, 1.0, card.Opacity())
}

func TestFeatureRowStacksWhenNarrow(t *testing.T) {
	wide := NewFeatureRow(96)
	narrow := NewFeatureRow(60)
	for i := 0; i < 3; i++ {
		wide.AddCard(NewFeatureCard("*", "t", "d"))
		narrow.AddCard(NewFeatureCard("*", "t", "d"))
	}

	assert.False(t, wide.Stacked())
	assert.Equal(t, []int{0, 0, 0}, wide.Offsets())

	require.True(t, narrow.Stacked())
	offsets := narrow.Offsets()
	assert.Equal(t, 0, offsets[0])
	assert.Greater(t, offsets[1], offsets[0])
	assert.Greater(t, offsets[2], offsets[1])
}

func TestMosaicTonesDarkenDiagonally(t *testing.T) {
	m := NewMosaic(40, 2)

	assert.Equal(t, 0, m.ToneAt(0, 0))
	assert.Equal(t, len(SkinTones)-1, m.ToneAt(1000, 0))
	prev := 0
	for col := 0; col < 20; col++ {
		tone := m.ToneAt(col, 0)
		assert.GreaterOrEqual(t, tone, prev)
		prev = tone
	}
	assert.GreaterOrEqual(t, m.ToneAt(5, 1), m.ToneAt(5, 0))

	assert.Equal(t, 2, lipgloss.Height(m.Render()))
	assert.LessOrEqual(t, lipgloss.Width(m.Render()), 40)
	assert.Empty(t, NewMosaic(0, 2).Render())
}

func TestDialogRender(t *testing.T) {
	d := NewDialog("We're currently finalizing the design of our system", "Return to Homepage")
	out := d.Render()
	assert.Contains(t, out, "Return to Homepage")

	d.Spinner.Tick()
	assert.Equal(t, 1, d.Spinner.Frame)
	for i := 0; i < len(spinnerFrames); i++ {
		d.Spinner.Tick()
	}
	assert.Equal(t, 1, d.Spinner.Frame)
}

func testFields() []content.Field {
	return []content.Field{
		{ID: "name", Label: "Full name"},
		{ID: "card_number", Label: "Card number", Secret: true},
	}
}

func TestCheckoutFormFocusCycle(t *testing.T) {
	f := NewCheckoutForm(testFields(), "Complete Pre-order")
	assert.Equal(t, -1, f.Focused())

	assert.Equal(t, []FieldEvent{{Field: "name", Action: controller.FieldFocus}}, f.FocusFirst())
	assert.Nil(t, f.FocusFirst(), "refocusing the same field reports nothing")

	f.Next()
	assert.Equal(t, 1, f.Focused())
	f.Next()
	assert.True(t, f.OnSubmit())
	assert.False(t, f.FieldFocused())
	f.Next()
	assert.Equal(t, 0, f.Focused())
	f.Prev()
	assert.True(t, f.OnSubmit())
}

func TestCheckoutFormReportsCompleteAndClear(t *testing.T) {
	f := NewCheckoutForm(testFields(), "Submit")
	f.FocusFirst()

	for _, r := range "Ada" {
		_, events := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		assert.Empty(t, events)
	}
	assert.Equal(t, "Ada", f.Value("name"))

	var cleared []FieldEvent
	for i := 0; i < 3; i++ {
		_, events := f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		cleared = append(cleared, events...)
	}
	assert.Equal(t, []FieldEvent{{Field: "name", Action: controller.FieldClear}}, cleared)

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	events := f.Blur()
	assert.Equal(t, []FieldEvent{{Field: "name", Action: controller.FieldComplete}}, events)
	assert.Equal(t, -1, f.Focused())
}

func TestCheckoutFormSecretFieldsAreMasked(t *testing.T) {
	f := NewCheckoutForm(testFields(), "Submit")
	f.Next()
	f.Next()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4242")})

	assert.Equal(t, "4242", f.Value("card_number"))
	assert.NotContains(t, f.Render(), "4242")
}

func TestCheckoutFormReset(t *testing.T) {
	f := NewCheckoutForm(testFields(), "Submit")
	f.FocusFirst()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})

	f.Reset()
	assert.Empty(t, f.Value("name"))
	assert.Equal(t, -1, f.Focused())
	cmd, events := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.Nil(t, events)
	assert.Empty(t, f.Value("name"))
	assert.Empty(t, f.Value("missing"))
}
