package views

import (
	"github.com/Cyclone1070/finditfaster/internal/ui/models"
	"github.com/Cyclone1070/finditfaster/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout.
func RenderRoot(s models.State, renderer services.MarkdownRenderer) string {
	if s.ShowHelp {
		help, err := renderer.Render(services.HelpMarkdown, s.Width)
		if err != nil {
			help = services.HelpMarkdown
		}
		return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, help)
	}

	sections := []string{
		RenderMenu(s),
		RenderInput(s),
		s.Viewport.View(),
		RenderStatus(s),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
