package components

import (
	"strings"

	"github.com/abhisek/numa/internal/session"
	"github.com/abhisek/numa/internal/ui/theme"
)

// RenderHistory renders the answer history newest first, each line faded
// by its opacity.
func RenderHistory(lines []session.Line) string {
	var b strings.Builder
	for i, l := range lines {
		mark := "✓ "
		if !l.Correct {
			mark = "✗ "
		}
		b.WriteString(theme.HistoryStyle(l.Correct, l.Opacity).Render(mark + l.Text))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
