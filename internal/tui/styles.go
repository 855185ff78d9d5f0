package tui

import "github.com/charmbracelet/lipgloss"

var (
	purple   = lipgloss.Color("#A78BFA")
	pink     = lipgloss.Color("#DB2777")
	indigo   = lipgloss.Color("#4F46E5")
	green    = lipgloss.Color("#4ADE80")
	blue     = lipgloss.Color("#60A5FA")
	gray     = lipgloss.Color("#6B7280")
	dimGray  = lipgloss.Color("#374151")
	offWhite = lipgloss.Color("#FAFAFA")
)

// Static styles for content elements
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(dimGray).
			Padding(0, 1)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(offWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(gray)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(offWhite).
			Background(indigo).
			Bold(true).
			Padding(0, 2)

	FocusedButtonStyle = ButtonStyle.
				Background(pink)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(gray).
				Background(dimGray).
				Padding(0, 2)

	SelectorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Width(6).
			Align(lipgloss.Center)

	FocusedSelectorStyle = SelectorStyle.
				BorderForeground(purple)

	LabelStyle = lipgloss.NewStyle().
			Foreground(gray)

	StandStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	HitStyle = lipgloss.NewStyle().
			Foreground(blue).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Padding(0, 1)

	PulsePanelStyle = PanelStyle.
			BorderForeground(pink)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(gray)
)
