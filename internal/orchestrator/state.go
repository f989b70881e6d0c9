package orchestrator

import (
	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/Cyclone1070/finditfaster/internal/session"
)

// SystemState is owned by the control loop. Nothing else reads or writes it.
type SystemState struct {
	Settings          config.Settings
	Config            *config.Config
	SessionEnv        map[string]string
	Locations         *search.Locations
	WorkspaceRoots    []string
	FlightCheckPassed bool
	Running           command.ID
}

// View is a copy of the parts of SystemState a host may display.
type View struct {
	Ready             bool
	FlightCheckPassed bool
	SessionID         string
	SessionState      string
	SessionFiles      session.Files
	Running           command.ID
	Locations         []search.Location
	WorkspaceRoots    []string
	Explain           string
}

func (o *Orchestrator) view() View {
	v := View{
		Ready:             o.state.Config != nil,
		FlightCheckPassed: o.state.FlightCheckPassed,
		SessionState:      o.sessions.State().String(),
		Running:           o.state.Running,
		Locations:         o.state.Locations.All(),
		WorkspaceRoots:    append([]string(nil), o.state.WorkspaceRoots...),
	}
	if s := o.sessions.Current(); s != nil {
		v.SessionID = s.ID
		v.SessionFiles = s.Files
	}
	if o.state.Locations != nil {
		v.Explain = o.state.Locations.Explain(false)
	}
	return v
}
