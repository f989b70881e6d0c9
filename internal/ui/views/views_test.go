package views

import (
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/Cyclone1070/finditfaster/internal/ui/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

type stubRenderer struct{ out string }

func (s stubRenderer) Render(string, int) (string, error) { return s.out, nil }

func TestRenderMenu_ListsEveryItem(t *testing.T) {
	s := models.State{Items: models.DefaultItems(), Cursor: 1}

	out := RenderMenu(s)

	for _, item := range s.Items {
		assert.Contains(t, out, item.Title)
	}
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name string
		s    models.State
		want string
	}{
		{"Not Ready", models.State{}, "settings not loaded"},
		{"Running", models.State{View: orchestrator.View{Ready: true, FlightCheckPassed: true, Running: command.FindFiles}}, "running findFiles"},
		{"Flight Check Failed", models.State{View: orchestrator.View{Ready: true}}, "flight check failed"},
		{"Last Result", models.State{View: orchestrator.View{Ready: true, FlightCheckPassed: true}, LastResult: "findFiles opened 1"}, "findFiles opened 1"},
		{"Idle", models.State{View: orchestrator.View{Ready: true, FlightCheckPassed: true}}, "Ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.s.Spinner = spinner.New()
			assert.Contains(t, RenderStatus(tt.s), tt.want)
		})
	}
}

func TestRenderStatus_ShowsSessionAndLocations(t *testing.T) {
	s := models.State{View: orchestrator.View{
		Ready:             true,
		FlightCheckPassed: true,
		SessionState:      "active",
		Locations:         []search.Location{{Path: "/a"}, {Path: "/b"}},
	}}

	out := RenderStatus(s)

	assert.Contains(t, out, "session active")
	assert.Contains(t, out, "2 locations")
}

func TestFormatLog_PrefixesBySeverity(t *testing.T) {
	msgs := []models.Message{
		{Level: models.LevelInfo, Text: "opened"},
		{Level: models.LevelWarning, Text: "odd"},
		{Level: models.LevelError, Text: "bad", At: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
	}

	lines := strings.Split(FormatLog(msgs, 0), "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "opened")
	assert.Contains(t, lines[1], "warning: odd")
	assert.Contains(t, lines[2], "09:30:00")
	assert.Contains(t, lines[2], "error: bad")
}

func TestRenderRoot_HelpOverlay(t *testing.T) {
	s := models.State{Width: 40, Height: 10, ShowHelp: true}

	out := RenderRoot(s, stubRenderer{out: "HELP TEXT"})

	assert.Contains(t, out, "HELP TEXT")
	assert.NotContains(t, out, "FindItFaster\n")
}
