package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numa/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal row of buttons with one focused at a time.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row focused on the first button.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update moves focus on left/right/tab and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.Focused = (r.Focused + len(r.Buttons) - 1) % len(r.Buttons)
	case "right", "l", "tab":
		r.Focused = (r.Focused + 1) % len(r.Buttons)
	case "enter":
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts = append(parts, theme.ButtonActive.Render("▸ "+b.Label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(b.Label))
		}
	}
	return strings.Join(parts, "  ")
}
