package views

import (
	"strings"

	"github.com/Cyclone1070/finditfaster/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// FormatLog renders messages oldest first, one per line.
func FormatLog(messages []models.Message, width int) string {
	var lines []string
	for _, m := range messages {
		var style lipgloss.Style
		prefix := ""
		switch m.Level {
		case models.LevelError:
			style, prefix = LogErrorStyle, "error: "
		case models.LevelWarning:
			style, prefix = LogWarningStyle, "warning: "
		default:
			style = LogInfoStyle
		}
		stamp := ""
		if !m.At.IsZero() {
			stamp = LogTimeStyle.Render(m.At.Format("15:04:05")) + " "
		}
		if width > 0 {
			style = style.Width(width)
		}
		lines = append(lines, stamp+style.Render(prefix+m.Text))
	}
	return strings.Join(lines, "\n")
}
