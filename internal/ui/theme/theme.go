package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: green on black, terminal style
var (
	Primary   = lipgloss.Color("#28A746") // Drill Green
	Secondary = lipgloss.Color("#1F7A35") // Dark Green
	Accent    = lipgloss.Color("#E3B341") // Amber
	Success   = lipgloss.Color("#28A746") // Green
	Error     = lipgloss.Color("#FF0000") // Red
	Text      = lipgloss.Color("#E6EDF3") // Off White
	TextDim   = lipgloss.Color("#7D8590") // Grey
	BgDark    = lipgloss.Color("#000000") // Black
	BgCard    = lipgloss.Color("#0D1117") // Near Black
	Border    = lipgloss.Color("#30363D") // Graphite
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Prompt renders the question being drilled.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	// Reveal renders the accepted answers when they are toggled on.
	Reveal = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 1)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// HUD
var (
	StatLabel = lipgloss.NewStyle().
			Foreground(TextDim)

	StatValue = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	StatError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(Border).
			Foreground(Text).
			Padding(0, 2)

	KeyActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Width(5).
			Align(lipgloss.Center)

	KeyInactive = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Width(5).
			Align(lipgloss.Center)
)
