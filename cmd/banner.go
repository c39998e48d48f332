package cmd

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/jobific/tui"
)

const jobificASCII = `   _       _     _  __ _
  (_) ___ | |__ (_)/ _(_) ___
  | |/ _ \| '_ \| | |_| |/ __|
  | | (_) | |_) | |  _| | (__
 _/ |\___/|_.__/|_|_| |_|\___|
|__/`

// RenderBanner returns the styled banner shown by the root and version commands
func RenderBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(tui.RGBPink).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tui.RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1)

	banner := bannerStyle.Render(jobificASCII)
	subtitle := subtitleStyle.Render("recommended companies and work24 job listings")

	return containerStyle.Render(banner + "\n" + subtitle)
}
