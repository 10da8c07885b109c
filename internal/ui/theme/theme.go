package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/difficulty"
)

// Color palette — navy base with bright status accents
var (
	Primary   = lipgloss.Color("#4187FF") // Electric blue
	Secondary = lipgloss.Color("#28A791") // Teal
	Accent    = lipgloss.Color("#FF915F") // Coral
	Success   = lipgloss.Color("#28A791") // Teal-leaning green
	Error     = lipgloss.Color("#DC3559") // Warm red
	Text      = lipgloss.Color("#F5F8FA") // Blue-tinted white
	TextDim   = lipgloss.Color("#607488") // Bluish gray
	BgDark    = lipgloss.Color("#101830") // Darkest navy
	BgCard    = lipgloss.Color("#192D55") // Dark navy
	Border    = lipgloss.Color("#234173") // Primary navy
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
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim).
		Faint(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// levelColors maps each difficulty level to its accent color.
var levelColors = map[difficulty.Level]color.Color{
	difficulty.LevelIntro:  lipgloss.Color("#4187FF"), // Light navy
	difficulty.LevelBasic:  lipgloss.Color("#28A791"), // Teal
	difficulty.LevelMedium: lipgloss.Color("#7891FF"), // Periwinkle
	difficulty.LevelHard:   lipgloss.Color("#B4379B"), // Royal purple
	difficulty.LevelCustom: lipgloss.Color("#FF915F"), // Coral orange
}

// LevelStyle returns the accent style for a difficulty level.
func LevelStyle(level difficulty.Level) lipgloss.Style {
	c, ok := levelColors[level]
	if !ok {
		c = Primary
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
