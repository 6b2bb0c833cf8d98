package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numa/internal/ui/theme"
)

// KeyBackspace is the keypad key that deletes the last character.
const KeyBackspace = "⌫"

var keypadRows = [][]string{
	{"7", "8", "9"},
	{"4", "5", "6"},
	{"1", "2", "3"},
	{"-", "0", "."},
	{",", KeyBackspace},
}

// KeypadPressMsg is emitted when a keypad key is pressed.
type KeypadPressMsg struct {
	Key string
}

// Keypad is an on-screen numeric keypad navigated with the arrow keys.
// Presses are delivered as KeypadPressMsg so they reach the answer through
// the same path as typed characters.
type Keypad struct {
	row, col int
}

// NewKeypad creates a keypad with the cursor on "5".
func NewKeypad() Keypad {
	return Keypad{row: 1, col: 1}
}

// Selected returns the key under the cursor.
func (k Keypad) Selected() string {
	return keypadRows[k.row][k.col]
}

// Update moves the cursor on arrow keys and presses on enter.
func (k Keypad) Update(msg tea.Msg) (Keypad, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return k, nil
	}

	switch kmsg.String() {
	case "up":
		if k.row > 0 {
			k.row--
		}
	case "down":
		if k.row < len(keypadRows)-1 {
			k.row++
		}
	case "left":
		if k.col > 0 {
			k.col--
		}
	case "right":
		if k.col < len(keypadRows[k.row])-1 {
			k.col++
		}
	case "enter":
		key := k.Selected()
		return k, func() tea.Msg { return KeypadPressMsg{Key: key} }
	}
	k.col = min(k.col, len(keypadRows[k.row])-1)
	return k, nil
}

// View renders the keypad grid.
func (k Keypad) View() string {
	rows := make([]string, 0, len(keypadRows))
	for r, keys := range keypadRows {
		cells := make([]string, 0, len(keys))
		for c, key := range keys {
			style := theme.KeyInactive
			if r == k.row && c == k.col {
				style = theme.KeyActive
			}
			cells = append(cells, style.Render(key))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
