package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
)

// FieldEvent is an interaction worth reporting. It never carries the value.
type FieldEvent struct {
	Field  string
	Action controller.FieldAction
}

// CheckoutForm is the simulated pre-order form. Focus moves over the
// fields and then the submit button.
type CheckoutForm struct {
	fields []content.Field
	inputs []textinput.Model
	submit string
	focus  int
	width  int
	colors Colors
}

// NewCheckoutForm builds inputs for the given fields
func NewCheckoutForm(fields []content.Field, submit string) *CheckoutForm {
	f := &CheckoutForm{
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
		submit: submit,
		focus:  -1,
		width:  50,
		colors: DefaultColors(),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.Placeholder
		in.Prompt = ""
		if field.CharLimit > 0 {
			in.CharLimit = field.CharLimit
		}
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
	return f
}

// SetWidth sets the form width
func (f *CheckoutForm) SetWidth(width int) *CheckoutForm {
	f.width = width
	return f
}

// SetColors sets the palette
func (f *CheckoutForm) SetColors(colors Colors) *CheckoutForm {
	f.colors = colors
	return f
}

// Focused returns the focus index. len(fields) is the submit button and
// -1 means nothing has focus.
func (f *CheckoutForm) Focused() int {
	return f.focus
}

// FieldFocused reports whether a text input has focus
func (f *CheckoutForm) FieldFocused() bool {
	return f.focus >= 0 && f.focus < len(f.inputs)
}

// OnSubmit reports whether the submit button has focus
func (f *CheckoutForm) OnSubmit() bool {
	return f.focus == len(f.inputs)
}

// Value returns the current text of a field
func (f *CheckoutForm) Value(id string) string {
	for i, field := range f.fields {
		if field.ID == id {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// Reset clears every value and removes focus without reporting anything
func (f *CheckoutForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = -1
}

// FocusFirst moves focus to the first field
func (f *CheckoutForm) FocusFirst() []FieldEvent {
	return f.setFocus(0)
}

// Next moves focus forward, wrapping after the submit button
func (f *CheckoutForm) Next() []FieldEvent {
	return f.setFocus((f.focus + 1) % (len(f.inputs) + 1))
}

// Prev moves focus backward, wrapping before the first field
func (f *CheckoutForm) Prev() []FieldEvent {
	n := len(f.inputs) + 1
	return f.setFocus((f.focus - 1 + n) % n)
}

// Blur removes focus, reporting a completed field if it has text
func (f *CheckoutForm) Blur() []FieldEvent {
	return f.setFocus(-1)
}

// Update passes a key to the focused input. Emptying a field reports a
// clear.
func (f *CheckoutForm) Update(msg tea.Msg) (tea.Cmd, []FieldEvent) {
	if !f.FieldFocused() {
		return nil, nil
	}
	in := &f.inputs[f.focus]
	hadText := in.Value() != ""

	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	if hadText && in.Value() == "" {
		return cmd, []FieldEvent{{Field: f.fields[f.focus].ID, Action: controller.FieldClear}}
	}
	return cmd, nil
}

func (f *CheckoutForm) setFocus(next int) []FieldEvent {
	if next == f.focus {
		return nil
	}

	var events []FieldEvent
	if f.FieldFocused() {
		in := &f.inputs[f.focus]
		in.Blur()
		if in.Value() != "" {
			events = append(events, FieldEvent{Field: f.fields[f.focus].ID, Action: controller.FieldComplete})
		}
	}

	f.focus = next
	if f.FieldFocused() {
		f.inputs[f.focus].Focus()
		events = append(events, FieldEvent{Field: f.fields[f.focus].ID, Action: controller.FieldFocus})
	}
	return events
}

// Render renders the form
func (f *CheckoutForm) Render() string {
	labelStyle := lipgloss.NewStyle().Foreground(f.colors.Muted)
	activeLabelStyle := lipgloss.NewStyle().Foreground(f.colors.Foreground).Bold(true)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(f.colors.Border).
		Padding(0, 1).
		Width(max(f.width-2, 10))
	activeInputStyle := inputStyle.BorderForeground(f.colors.Accent)

	rows := make([]string, 0, len(f.inputs)+1)
	for i, field := range f.fields {
		label, box := labelStyle, inputStyle
		if i == f.focus {
			label, box = activeLabelStyle, activeInputStyle
		}
		rows = append(rows, lipgloss.JoinVertical(
			lipgloss.Left,
			label.Render(field.Label),
			box.Render(f.inputs[i].View()),
		))
	}

	button := lipgloss.NewStyle().
		Foreground(f.colors.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.colors.Border).
		Padding(0, 3)
	if f.OnSubmit() {
		button = button.
			Foreground(f.colors.InverseFg).
			Background(f.colors.Inverse).
			BorderForeground(f.colors.Inverse).
			Bold(true)
	}
	rows = append(rows, "", button.Render(f.submit))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
