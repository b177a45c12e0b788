// Package components provides reusable widgets for the interactive client.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leefowlercu/weatherfile/internal/tui/styles"
)

// ValidatorFunc is a function that validates input.
type ValidatorFunc func(string) error

// TextInput wraps the bubbles textinput with a label and optional validation.
type TextInput struct {
	input     textinput.Model
	label     string
	validator ValidatorFunc
}

// NewTextInput creates a new text input with the given label and placeholder.
func NewTextInput(label, placeholder string) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "

	return TextInput{
		input: ti,
		label: label,
	}
}

// Update handles input events.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View renders the label above the input. The label is highlighted while focused.
func (t TextInput) View() string {
	label := styles.Unfocused.Render(t.label)
	if t.input.Focused() {
		label = styles.Focused.Render(t.label)
	}
	return label + "\n" + t.input.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.input.Value()
}

// TrimmedValue returns the value without surrounding whitespace.
func (t TextInput) TrimmedValue() string {
	return strings.TrimSpace(t.input.Value())
}

// SetValue sets the input value.
func (t *TextInput) SetValue(value string) {
	t.input.SetValue(value)
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.input.Blur()
}

// Focused returns whether the input is focused.
func (t TextInput) Focused() bool {
	return t.input.Focused()
}

// SetValidator sets the validation function.
func (t *TextInput) SetValidator(fn ValidatorFunc) {
	t.validator = fn
}

// Validate runs the validator if set.
func (t TextInput) Validate() error {
	if t.validator != nil {
		return t.validator(t.input.Value())
	}
	return nil
}

// SetWidth sets the input width.
func (t *TextInput) SetWidth(width int) {
	t.input.Width = width
}

// Reset clears the input value.
func (t *TextInput) Reset() {
	t.input.Reset()
}
