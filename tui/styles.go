package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
)

// palette shared with the banner
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	HighlightStyle = lipgloss.NewStyle().
			Background(RGBSubtlePink).
			Foreground(RGBPink).
			Bold(true)

	FilterTagStyle = lipgloss.NewStyle().
			Foreground(RGBBlue)

	HelpStyle = lipgloss.NewStyle().
			Foreground(RGBGrey).
			Faint(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(RGBRed).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(RGBGreen)
)

// table post-processing styles
var (
	StyleSearchMatch = lipgloss.NewStyle().Foreground(RGBYellow).Bold(true)
	StylePlaceholder = lipgloss.NewStyle().Faint(true)
)

// ApplyTableStyles applies the pink table theme used on every page
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		Foreground(RGBPink).
		Bold(true).
		Padding(0, 1)

	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink).
		Background(RGBSubtlePink)

	s.Cell = lipgloss.NewStyle().Padding(0, 1)

	t.SetStyles(s)
	return t
}
