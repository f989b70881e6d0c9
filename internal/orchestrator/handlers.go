package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/result"
	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/Cyclone1070/finditfaster/internal/session"
)

// reinitialize rebuilds the config snapshot, the search locations and the
// session. It reports whether a session is ready for commands.
func (o *Orchestrator) reinitialize(ctx context.Context) bool {
	settings, err := o.deps.Settings.LoadSettings()
	if err != nil {
		o.deps.Host.ShowError(err.Error())
		return false
	}
	cfg, err := config.Resolve(settings)
	if err != nil {
		o.deps.Host.ShowError(err.Error())
		return false
	}
	extra, err := config.LoadSessionEnv(cfg.SessionEnvFile)
	if err != nil {
		o.deps.Host.ShowWarning(err.Error())
		extra = nil
	}

	o.state.Settings = settings
	o.state.Config = cfg
	o.state.SessionEnv = extra
	o.resolveLocations()
	o.logger.Debug("config_resolved", slog.String("settings", config.Describe(settings)))

	o.sessions.Dispose()
	o.state.Running = ""
	if !o.flightCheck(ctx) {
		return false
	}

	if _, err := o.sessions.Reprovision(ctx, o.sessionEnv()); err != nil {
		o.deps.Host.ShowError(err.Error())
		return false
	}
	return true
}

// flightCheck runs the preflight unless it already passed or is disabled.
func (o *Orchestrator) flightCheck(ctx context.Context) bool {
	cfg := o.state.Config
	if o.state.FlightCheckPassed || cfg.DisableStartupChecks {
		return true
	}
	if err := o.checkTools(ctx); err != nil {
		o.deps.Host.ShowError(err.Error())
		return false
	}
	return true
}

func (o *Orchestrator) checkTools(ctx context.Context) error {
	spec, err := o.deps.Registry.Get(command.FlightCheck)
	if err != nil {
		return err
	}
	// No session files exist yet; the check sees the rest of the session
	// environment, including session env file entries such as PATH.
	env := append(os.Environ(), o.sessionEnv().Vars(session.Files{})...)
	if err := o.deps.Checker.Run(ctx, spec, env); err != nil {
		o.logger.Warn("flight_check_failed", slog.String("error", err.Error()))
		o.state.FlightCheckPassed = false
		return err
	}
	o.state.FlightCheckPassed = true
	return nil
}

// recheck runs the flight check on request, ignoring the cached result and
// the disable setting.
func (o *Orchestrator) recheck(ctx context.Context) {
	if err := o.checkTools(ctx); err != nil {
		o.fail(command.FlightCheck, err)
		return
	}
	o.deps.Host.ShowInfo("Flight check passed: bat, fzf and rg are installed.")
	o.complete(Completion{Command: command.FlightCheck, Success: true})
}

func (o *Orchestrator) sessionEnv() session.Env {
	return session.EnvFromConfig(o.state.Config, o.state.SessionEnv, o.deps.Cwd)
}

func (o *Orchestrator) resolveLocations() {
	cfg := o.state.Config
	if cfg == nil {
		return
	}
	locs, warnings := search.Resolve(search.ResolveInput{
		Cwd:              o.deps.Cwd,
		CwdPolicy:        cfg.SearchCurrentWorkingDirectory,
		Extra:            cfg.AdditionalSearchLocations,
		ExtraPolicy:      cfg.AdditionalSearchLocationsWhen,
		WorkspaceFolders: cfg.SearchWorkspaceFolders,
		WorkspaceRoots:   o.state.WorkspaceRoots,
	})
	for _, w := range warnings {
		o.deps.Host.ShowWarning(w.Error())
	}
	o.state.Locations = locs
}

func (o *Orchestrator) execute(ctx context.Context, id command.ID, selection string) {
	if id == command.FlightCheck {
		o.recheck(ctx)
		return
	}
	if o.state.Config == nil || (!o.state.FlightCheckPassed && !o.state.Config.DisableStartupChecks) {
		if !o.reinitialize(ctx) {
			o.complete(Completion{Command: id, Err: ErrNotReady})
			return
		}
	}
	cfg := o.state.Config
	if cfg == nil {
		o.fail(id, ErrNotReady)
		return
	}

	if o.state.Running != "" {
		// A detached run is still on the terminal: bring it back rather
		// than typing over it.
		if sess := o.sessions.Current(); sess != nil && o.sessions.State() == session.StateActive && !sess.Degraded() {
			if err := sess.Terminal.Show(cfg.ShowMaximizedTerminal); err != nil {
				o.fail(id, err)
				return
			}
			o.logger.Info("command_resumed", slog.String("command", string(o.state.Running)), slog.String("session", sess.ID))
			return
		}
		o.state.Running = ""
	}

	spec, err := o.deps.Registry.Get(id)
	if err != nil {
		o.fail(id, err)
		return
	}

	o.resolveLocations()

	sess, err := o.sessions.Ensure(ctx, o.sessionEnv())
	if err != nil {
		o.fail(id, err)
		return
	}

	if spec.PreRun != nil {
		if err := spec.PreRun(command.HookInput{ExplainFile: sess.Files.Explain, Locations: o.state.Locations}); err != nil {
			o.fail(id, err)
			return
		}
	}

	line, err := command.Build(spec, command.BuildInput{
		Locations:     o.state.Locations.Paths(),
		SelectionFile: sess.Files.Selection,
		Selection:     selection,
		UseSelection:  cfg.UseEditorSelectionAsQuery,
	})
	if err != nil {
		o.fail(id, err)
		return
	}

	// Shown before typing so the tool's first frame lands on screen.
	if err := sess.Terminal.Show(cfg.ShowMaximizedTerminal); err != nil {
		o.logger.Warn("terminal_show_failed", slog.String("error", err.Error()))
	}
	if err := sess.Terminal.SendText(line); err != nil {
		o.fail(id, err)
		return
	}
	o.state.Running = id
	o.logger.Info("command_sent", slog.String("command", string(id)), slog.String("session", sess.ID), slog.Int("locations", o.state.Locations.Len()))
}

func (o *Orchestrator) handleSessionEvent(ctx context.Context, ev session.SessionEvent) {
	sess := o.sessions.Current()
	if sess == nil || sess.ID != ev.SessionID {
		o.logger.Debug("stale_session_event", slog.String("session", ev.SessionID), slog.String("kind", ev.Kind.String()))
		return
	}

	switch ev.Kind {
	case session.EventRename:
		o.sessions.MarkDegraded(ev.SessionID)
		o.deps.Host.ShowError(ev.Err.Error())
		return
	case session.EventWatchError:
		o.deps.Host.ShowWarning(ev.Err.Error())
		return
	}

	cfg := o.state.Config
	if cfg.ClearTerminalAfterUse {
		if err := sess.Terminal.SendText("clear"); err != nil {
			o.logger.Debug("terminal_clear_failed", slog.String("error", err.Error()))
		}
	}

	done := Completion{SessionID: ev.SessionID, Command: o.state.Running}
	o.state.Running = ""

	if ev.Err != nil {
		// Terminal stays up so the user can see what happened.
		o.deps.Host.ShowWarning(ev.Err.Error())
		done.Err = ev.Err
		o.complete(done)
		return
	}

	done.Success = session.Classify(ev.Payload)
	if done.Success {
		records, err := result.Parse(string(ev.Payload))
		if err != nil {
			o.deps.Host.ShowError(err.Error())
			done.Err = err
		}
		done.Records = records
		for _, rec := range records {
			if err := o.deps.Opener.Open(ctx, rec); err != nil {
				o.deps.Host.ShowError(err.Error())
				done.Err = errors.Join(done.Err, err)
			}
		}
	}

	if (done.Success && cfg.HideTerminalAfterSuccess) || (!done.Success && cfg.HideTerminalAfterFail) {
		if err := sess.Terminal.Hide(); err != nil {
			o.logger.Debug("terminal_hide_failed", slog.String("error", err.Error()))
		}
	}
	o.complete(done)
}

// fail reports a run that ended before the command reached the terminal.
func (o *Orchestrator) fail(id command.ID, err error) {
	o.deps.Host.ShowError(err.Error())
	o.complete(Completion{Command: id, Err: err})
}

func (o *Orchestrator) complete(c Completion) {
	o.logger.Info("command_completed",
		slog.String("command", string(c.Command)),
		slog.Bool("success", c.Success),
		slog.Int("records", len(c.Records)))
	if o.deps.OnComplete != nil {
		o.deps.OnComplete(c)
	}
}
