package views

import (
	"github.com/Cyclone1070/finditfaster/internal/ui/models"
)

// RenderInput renders the query box. The border lights up while it has focus.
func RenderInput(s models.State) string {
	style := InputStyle
	if s.Mode != models.ModeMenu {
		style = InputFocusedStyle
	}
	if s.Width > 4 {
		style = style.Width(s.Width - 4)
	}
	return style.Render(s.Input.View())
}
