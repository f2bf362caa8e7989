package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextInput wraps the bubbles text input behind a pointer receiver so
// controllers can share one instance.
type TextInput struct {
	model textinput.Model
}

func NewTextInput(width int) *TextInput {
	model := textinput.New()
	model.Width = inputWidth(width)
	model.CharLimit = 512
	model.Focus()
	return &TextInput{model: model}
}

func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return cmd
}

func (t *TextInput) View() string {
	return t.model.View()
}

func (t *TextInput) Value() string {
	return t.model.Value()
}

func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
}

func (t *TextInput) SetPlaceholder(placeholder string) {
	t.model.Placeholder = placeholder
}

func (t *TextInput) CursorEnd() {
	t.model.CursorEnd()
}

func (t *TextInput) Resize(width int) {
	t.model.Width = inputWidth(width)
}

func inputWidth(width int) int {
	if width <= 4 {
		return 20
	}
	return width - 4
}
