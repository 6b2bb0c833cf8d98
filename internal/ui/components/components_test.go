package components

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numa/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestKeypad_NavigateAndPress(t *testing.T) {
	k := NewKeypad()
	assert.Equal(t, "5", k.Selected())

	k, _ = k.Update(specialKey(tea.KeyUp))
	k, _ = k.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "9", k.Selected())

	k, _ = k.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "9", k.Selected(), "clamped at the edge")

	k, cmd := k.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, KeypadPressMsg{Key: "9"}, cmd())
}

func TestKeypad_ShortRowClampsColumn(t *testing.T) {
	k := NewKeypad()
	k, _ = k.Update(specialKey(tea.KeyRight)) // "6"
	for range 3 {
		k, _ = k.Update(specialKey(tea.KeyDown))
	}
	assert.Equal(t, KeyBackspace, k.Selected())
}

func TestAnswerInput_NumericFilter(t *testing.T) {
	in := NewAnswerInput()
	in.Prepare(4, true, false)

	for _, r := range "1a2,b" {
		in, _ = in.Update(keyPress(r))
	}
	assert.Equal(t, "12,", in.Value())
}

func TestAnswerInput_ExactAcceptsLetters(t *testing.T) {
	in := NewAnswerInput()
	in.Prepare(4, false, false)

	for _, r := range "vii" {
		in, _ = in.Update(keyPress(r))
	}
	assert.Equal(t, "vii", in.Value())
}

func TestAnswerInput_LockedIgnoresKeys(t *testing.T) {
	in := NewAnswerInput()
	in.Prepare(2, true, true)

	in, _ = in.Update(keyPress('4'))
	in.Press("2")
	assert.Empty(t, in.Value())

	in.Unlock()
	in.Press("4")
	in.Press("2")
	in.Press(KeyBackspace)
	assert.Equal(t, "4", in.Value())
}

func TestChrono(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewChrono(90*time.Second, func() time.Time { return now })
	assert.False(t, c.Running())

	c.Reset()
	now = now.Add(65 * time.Second)
	assert.Equal(t, 65*time.Second, c.Elapsed())
	assert.Equal(t, 25*time.Second, c.Remaining())
	assert.Equal(t, "01:05  ⏳ 00:25", c.View())

	c.Stop()
	now = now.Add(time.Minute)
	assert.Equal(t, 65*time.Second, c.Elapsed(), "stopped chrono is frozen")
	assert.False(t, c.Expired())

	c.Reset()
	now = now.Add(2 * time.Minute)
	assert.True(t, c.Expired())
	assert.Equal(t, time.Duration(0), c.Remaining())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "02:03", FormatClock(123*time.Second+400*time.Millisecond))
	assert.Equal(t, "1:00:01", FormatClock(time.Hour+time.Second))
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		Button{Label: "Repeat", OnPress: func() tea.Cmd { pressed = "repeat"; return nil }},
		Button{Label: "Exit", OnPress: func() tea.Cmd { pressed = "exit"; return nil }},
	)

	row, _ = row.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, row.Focused)
	row, _ = row.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 0, row.Focused, "focus wraps")

	row, _ = row.Update(specialKey(tea.KeyLeft))
	row.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "exit", pressed)
}

func TestMenu_ValueAndSkipDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Start"},
		{Label: "Random", Disabled: true},
		{Label: "Speed", Value: "1H"},
	})
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected)

	m.SetValue(2, "3H")
	assert.Contains(t, m.View(), "3H")
}

func TestHUD_Contents(t *testing.T) {
	h := HUD{
		Stats: session.Stats{
			Total: 4, Answered: 1, Fails: 2, Precision: 50,
			Average: 1500 * time.Millisecond, Last: 1500 * time.Millisecond,
		},
		Live:   300 * time.Millisecond,
		Chrono: "00:03",
		Width:  30,
	}
	wide := h.View()
	for _, want := range []string{"Errors", "50.0%", "1.5s", "0.3s", "1/4", "00:03"} {
		assert.Contains(t, wide, want)
	}

	h.Narrow = true
	narrow := h.View()
	assert.Less(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
}

func TestRenderHistory(t *testing.T) {
	out := RenderHistory([]session.Line{
		{Entry: session.Entry{Text: "2 + 2 = 4", Correct: true}, Opacity: 1},
		{Entry: session.Entry{Text: "3 × 3 = 8", Correct: false}, Opacity: 0.2},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "✓ 2 + 2 = 4")
	assert.Contains(t, lines[1], "✗ 3 × 3 = 8")
}
