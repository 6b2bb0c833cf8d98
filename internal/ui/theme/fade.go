package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fade blends fg towards the background by opacity, where 1 keeps fg and 0
// yields the background. Terminals have no alpha channel, so history
// entries fade by colour instead.
func Fade(fg color.Color, opacity float64) color.Color {
	if opacity >= 1 {
		return fg
	}
	if opacity < 0 {
		opacity = 0
	}
	from, ok := colorful.MakeColor(fg)
	if !ok {
		return fg
	}
	to, ok := colorful.MakeColor(BgDark)
	if !ok {
		return fg
	}
	return lipgloss.Color(to.BlendRgb(from, opacity).Clamped().Hex())
}

// HistoryStyle returns the style of a history line with the given outcome
// and opacity.
func HistoryStyle(correct bool, opacity float64) lipgloss.Style {
	fg := Success
	if !correct {
		fg = Error
	}
	return lipgloss.NewStyle().Foreground(Fade(fg, opacity))
}
