package views

import (
	"strings"

	"github.com/Cyclone1070/finditfaster/internal/ui/models"
)

// RenderMenu renders the command list with the cursor highlighted.
func RenderMenu(s models.State) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("FindItFaster"))
	b.WriteString("\n\n")
	for i, item := range s.Items {
		line := item.Title + "  " + MenuDescStyle.Render(item.Description)
		if i == s.Cursor {
			b.WriteString(MenuSelectedStyle.Render(line))
		} else {
			b.WriteString(MenuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
