package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBackground = lipgloss.Color("#282a36")
	colorForeground = lipgloss.Color("#f8f8f2")
	colorComment    = lipgloss.Color("#6272a4")
	colorCyan       = lipgloss.Color("#8be9fd")
	colorPurple     = lipgloss.Color("#bd93f9")
	colorPink       = lipgloss.Color("#ff79c6")
	colorRed        = lipgloss.Color("#ff5555")
	colorYellow     = lipgloss.Color("#f1fa8c")
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().Foreground(colorComment)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1).
			Width(48)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorForeground).
			PaddingLeft(2)

	selectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(colorBackground).
				Background(colorPink).
				PaddingLeft(1).
				PaddingRight(1)

	statusStyle = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	weatherStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPurple).
			Padding(0, 2)

	temperatureStyle = lipgloss.NewStyle().Foreground(colorForeground).Bold(true)

	vibeStyle = lipgloss.NewStyle().
			Foreground(colorPink).
			Italic(true).
			Width(60)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorComment).
			Padding(0, 1).
			Width(30)

	cardTitleStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(colorComment)
)
