package search

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var explainSections = []struct {
	origin  PathOrigin
	heading string
}{
	{OriginCwd, "Paths added because they're the working directory:"},
	{OriginWorkspace, "Paths added because they're defined in the workspace:"},
	{OriginSettings, "Paths added because they're specified in the settings:"},
}

// Explain renders a report grouping every location by origin. A path with
// several origins appears under each of them. With useColor the headings
// carry ANSI escapes regardless of the current terminal, since the report is
// written to a file and printed later by the list script.
func (l *Locations) Explain(useColor bool) string {
	heading := func(s string) string { return s }
	if useColor {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI)
		style := r.NewStyle().Foreground(lipgloss.Color("6"))
		heading = func(s string) string { return style.Render(s) }
	}

	var sb strings.Builder
	for _, sec := range explainSections {
		sb.WriteString(heading(sec.heading))
		sb.WriteString("\n")
		n := 0
		for _, loc := range l.All() {
			if loc.Origins.Has(sec.origin) {
				sb.WriteString("- ")
				sb.WriteString(loc.Path)
				sb.WriteString("\n")
				n++
			}
		}
		if n == 0 {
			sb.WriteString("- <none>\n")
		}
	}
	return sb.String()
}
