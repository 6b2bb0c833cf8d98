package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numa/internal/session"
	"github.com/abhisek/numa/internal/ui/theme"
)

// HUD renders the live session counters.
type HUD struct {
	Stats  session.Stats
	Live   time.Duration
	Chrono string
	Narrow bool
	Width  int
}

type hudField struct {
	label string
	value string
	style lipgloss.Style
}

func (h HUD) fields() []hudField {
	st := h.Stats
	return []hudField{
		{"Errors", fmt.Sprintf("%d", st.Fails), theme.StatError},
		{"Precision", fmt.Sprintf("%.1f%%", st.Precision), theme.StatValue},
		{"Average", formatSeconds(st.AverageSeconds()), theme.StatValue},
		{"Last", formatSeconds(st.LastSeconds()), theme.StatValue},
		{"Time", formatSeconds(h.Live.Seconds()), theme.StatValue},
		{"Session", h.Chrono, theme.StatValue},
	}
}

// View renders the HUD. Wide terminals get one column beside the question;
// narrow ones get a compact block meant to sit under it.
func (h HUD) View() string {
	bar := NewProgressBar(h.Stats.Answered, h.Stats.Total, max(h.Width, 12))

	fields := h.fields()
	if h.Narrow {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, theme.StatLabel.Render(f.label+" ")+f.style.Render(f.value))
		}
		half := (len(parts) + 1) / 2
		return lipgloss.JoinVertical(lipgloss.Left,
			bar.View(),
			strings.Join(parts[:half], "  "),
			strings.Join(parts[half:], "  "),
		)
	}

	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, len(f.label))
	}
	lines := []string{bar.View(), ""}
	for _, f := range fields {
		label := theme.StatLabel.Render(f.label + strings.Repeat(" ", labelWidth-len(f.label)+2))
		lines = append(lines, label+f.style.Render(f.value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
