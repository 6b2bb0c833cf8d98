package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numa/internal/router"
	"github.com/abhisek/numa/internal/screen"
	"github.com/abhisek/numa/internal/session"
	"github.com/abhisek/numa/internal/ui/components"
	"github.com/abhisek/numa/internal/ui/layout"
	"github.com/abhisek/numa/internal/ui/theme"
)

// maxMissedShown caps the missed items listed on screen.
const maxMissedShown = 8

// RepeatMsg is delivered to the screen below after the summary is popped,
// asking it to restart the session.
type RepeatMsg struct{}

// ExitMsg is delivered to the screen below after the summary is popped,
// asking it to leave the session.
type ExitMsg struct{}

// SummaryScreen displays the completion screen with repeat and exit.
type SummaryScreen struct {
	summary *session.Summary
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		buttons: components.NewButtonRow(
			components.Button{Label: "Repeat", OnPress: repeat},
			components.Button{Label: "Exit", OnPress: exit},
		),
	}
}

func repeat() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return RepeatMsg{} },
	)
}

func exit() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return ExitMsg{} },
	)
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Complete"
}

func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "R", Description: "Repeat"},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r", "R":
			return s, repeat()
		case "esc", "q":
			return s, exit()
		}
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")

	headline := "Session complete!"
	if sum.Fails == 0 {
		headline = "Flawless session!"
	}
	b.WriteString(center(theme.Title.Render(headline)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Subtitle.Render(
		fmt.Sprintf("Duration: %s", components.FormatClock(sum.Duration)))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Items: %d    Correct: %d    Errors: %d    Precision: %.1f%%",
		sum.Total, sum.Successes, sum.Fails, sum.Precision)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n")

	timing := fmt.Sprintf("Average: %.1fs    Passes: %d", sum.Average.Seconds(), sum.Passes)
	b.WriteString(center(theme.Body.Render(timing)))
	b.WriteString("\n\n")

	if len(sum.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 40), 4)))
		b.WriteString(center(theme.StatLabel.Render("Missed")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n")

		for i, ex := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(center(theme.Hint.Render(
					fmt.Sprintf("… and %d more", len(sum.Missed)-maxMissedShown))))
				b.WriteString("\n")
				break
			}
			b.WriteString(center(theme.Incorrect.Render(ex.PromptText() + ex.PrimaryAnswer())))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(center(s.buttons.View()))
	return b.String()
}
