package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/finditfaster/internal/ui/models"
)

// RenderStatus renders the status bar.
func RenderStatus(s models.State) string {
	v := s.View
	var left string
	switch {
	case !v.Ready:
		left = StatusFailedStyle.Render("✘ settings not loaded")
	case v.Running != "":
		left = StatusRunningStyle.Render(fmt.Sprintf("%s running %s", s.Spinner.View(), v.Running))
	case !v.FlightCheckPassed:
		left = StatusFailedStyle.Render("✘ flight check failed")
	case s.LastResult != "":
		left = StatusOKStyle.Render("✔ " + s.LastResult)
	default:
		left = StatusDefaultStyle.Render("Ready")
	}

	var right []string
	if v.SessionState != "" {
		right = append(right, "session "+v.SessionState)
	}
	right = append(right, fmt.Sprintf("%d locations", len(v.Locations)))
	return left + "  " + StatusDefaultStyle.Render(strings.Join(right, " · ")) + "  " +
		StatusDefaultStyle.Render("? help")
}
