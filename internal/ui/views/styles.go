package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("63")
	ColorMuted   = lipgloss.Color("241")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("42")

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	MenuItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	MenuSelectedStyle = lipgloss.NewStyle().PaddingLeft(1).Bold(true).
				Foreground(ColorPrimary).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(ColorPrimary)
	MenuDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
	InputFocusedStyle = InputStyle.BorderForeground(ColorPrimary)

	LogInfoStyle    = lipgloss.NewStyle()
	LogWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	LogErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	LogTimeStyle    = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusDefaultStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusRunningStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusFailedStyle  = lipgloss.NewStyle().Foreground(ColorError)
	StatusOKStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
)
