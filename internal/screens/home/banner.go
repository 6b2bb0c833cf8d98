package home

import (
	"fmt"
	"path/filepath"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/ui/theme"
)

const bannerFull = ` ███╗   ██╗██╗   ██╗███╗   ███╗ █████╗
 ████╗  ██║██║   ██║████╗ ████║██╔══██╗
 ██╔██╗ ██║██║   ██║██╔████╔██║███████║
 ██║╚██╗██║██║   ██║██║╚██╔╝██║██╔══██║
 ██║ ╚████║╚██████╔╝██║ ╚═╝ ██║██║  ██║
 ╚═╝  ╚═══╝ ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝`

const bannerCompact = "N · U · M · A"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 56)
}

// renderBanner returns the block-letter title or its compact fallback.
func renderBanner(cw int, compact bool) string {
	text := bannerFull
	if compact {
		text = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(text))
}

// renderSetInfo renders the loaded exercise set in a bordered box.
func renderSetInfo(set *exercise.Set, cw int) string {
	title := "Exercises"
	if set.Title != "" {
		title = set.Title
	}
	info := theme.Selected.Render(title) + "\n" +
		theme.StatLabel.Render(fmt.Sprintf("%d items · %s", len(set.Items), filepath.Base(set.Path)))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(info)
}
