package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numa/internal/ui/theme"
)

// numericRunes are the characters a numeric answer may contain.
const numericRunes = "0123456789.,- "

// AnswerInput wraps bubbles/textinput for answer entry. In numeric mode
// only digits, separators and the minus sign are accepted.
type AnswerInput struct {
	Model   textinput.Model
	Numeric bool
	locked  bool
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput() AnswerInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "?"
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Prepare clears the input for a new item. The placeholder hints maxLen;
// length is enforced by the engine, which truncates. Locked inputs ignore
// keys until Unlock.
func (a *AnswerInput) Prepare(maxLen int, numeric, locked bool) {
	a.Model.Reset()
	a.Model.Placeholder = strings.Repeat("_", max(maxLen, 1))
	a.Numeric = numeric
	a.locked = locked
}

// Unlock opens a locked input.
func (a *AnswerInput) Unlock() { a.locked = false }

// Locked reports whether keys are currently ignored.
func (a AnswerInput) Locked() bool { return a.locked }

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if a.locked {
			return a, nil
		}
		if a.Numeric && kmsg.Text != "" && !strings.ContainsAny(kmsg.Text, numericRunes) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// Press applies an on-screen keypad key: a character is appended and
// KeyBackspace removes the last one.
func (a *AnswerInput) Press(key string) {
	if a.locked {
		return
	}
	v := []rune(a.Model.Value())
	switch key {
	case KeyBackspace:
		if len(v) > 0 {
			v = v[:len(v)-1]
		}
	default:
		v = append(v, []rune(key)...)
	}
	a.Model.SetValue(string(v))
	a.Model.CursorEnd()
}

// SetValue replaces the value, used when the engine truncates input.
func (a *AnswerInput) SetValue(v string) {
	a.Model.SetValue(v)
	a.Model.CursorEnd()
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// View renders the text input.
func (a AnswerInput) View() string {
	if a.locked {
		return theme.Hint.Render("…")
	}
	return a.Model.View()
}
