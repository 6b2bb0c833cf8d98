package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numa/internal/ui/components"
	"github.com/abhisek/numa/internal/ui/layout"
	"github.com/abhisek/numa/internal/ui/theme"
)

// hudWidth is the width of the HUD column on wide terminals.
const hudWidth = 26

func (s *DrillScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.current.Item == nil {
		return renderLoading(width, height)
	}

	narrow := layout.IsNarrow(width, s.opts.NarrowWidth)
	hud := components.HUD{
		Stats:  s.stats,
		Live:   s.engine.Elapsed(),
		Chrono: s.chronoView(),
		Narrow: narrow,
		Width:  hudWidth - 2,
	}

	if narrow {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.renderQuestion(width),
			"",
			" "+strings.ReplaceAll(hud.View(), "\n", "\n "),
			"",
			s.renderExtras(width),
		)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.renderQuestion(width-hudWidth),
		"",
		s.renderExtras(width-hudWidth),
	)
	right := theme.Card.Width(hudWidth).Render(hud.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderQuestion renders the prompt, the answer input and the reveal line.
func (s *DrillScreen) renderQuestion(width int) string {
	cur := s.current
	var b strings.Builder
	b.WriteString("\n")

	if cur.Pass > 1 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("pass %d: retrying missed items", cur.Pass))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	prompt := theme.Prompt.Render(cur.Prompt)
	if s.hidden {
		prompt = theme.Hint.Render(strings.Repeat("·", max(len([]rune(cur.Prompt))-1, 3)) + " ")
	}
	line := prompt + s.input.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	b.WriteString("\n")

	if s.showReveal {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Reveal.Render(cur.Reveal)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderExtras renders the keypad, when shown, and the answer history.
func (s *DrillScreen) renderExtras(width int) string {
	var parts []string
	if s.showKeypad {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, s.keypad.View()), "")
	}
	if len(s.history) > 0 {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.RenderHistory(s.history)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *DrillScreen) chronoView() string {
	if s.chrono.Expired() {
		return theme.StatError.Render(s.chrono.View())
	}
	return s.chrono.View()
}

// renderQuitConfirm renders the leave-session dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("It will reopen next time you run numa."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Preparing exercises...")
}

func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n  " + errMsg + "\n\n  Press any key to go back.")
}
