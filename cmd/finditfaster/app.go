package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/editor"
	"github.com/Cyclone1070/finditfaster/internal/executor"
	"github.com/Cyclone1070/finditfaster/internal/flightcheck"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/Cyclone1070/finditfaster/internal/session"
	"github.com/Cyclone1070/finditfaster/internal/workspace"
)

const (
	stateDir    = "finditfaster"
	logFileName = "finditfaster.log"
	openTimeout = 10 * time.Second
)

// app holds what every command shares: settings, paths and collaborators
// built from the settings present at startup.
type app struct {
	logger   *slog.Logger
	loader   *config.Loader
	cfg      *config.Config
	cwd      string
	roots    []string
	registry *command.Registry
	runner   executor.Runner
}

func newApp(opts *options, logger *slog.Logger, stderr io.Writer) (*app, error) {
	cwd := opts.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}

	loader := config.NewLoader(opts.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	scriptDir := resolveScriptDir(opts.scriptDir, cfg.ScriptDir, executableDir(), cwd)
	logger.Debug("app_started", slog.String("cwd", cwd), slog.String("scripts", scriptDir))

	return &app{
		logger:   logger,
		loader:   loader,
		cfg:      cfg,
		cwd:      cwd,
		roots:    workspace.Roots(opts.workspace, cwd, logger),
		registry: command.NewRegistry(scriptDir),
		runner:   executor.NewOSCommandExecutor(cfg),
	}, nil
}

// deps assembles orchestrator dependencies around a host and a surface.
func (a *app) deps(host editor.Host, surface session.Surface, opener editor.Opener) orchestrator.Deps {
	return orchestrator.Deps{
		Registry:       a.registry,
		Start:          session.PTYStarter(surface, a.logger),
		Checker:        a.checker(),
		Opener:         opener,
		Host:           host,
		Settings:       a.loader,
		Logger:         a.logger,
		Cwd:            a.cwd,
		WorkspaceRoots: a.roots,
	}
}

func (a *app) checker() *flightcheck.Checker {
	return flightcheck.NewChecker(a.runner, a.cfg.FlightCheckTimeout(), a.logger)
}

// opener opens results with editor.openCommand when set, and otherwise
// prints them to fallback.
func (a *app) opener(fallback io.Writer) editor.Opener {
	if len(a.cfg.EditorOpenCommand) > 0 {
		return editor.NewCommandOpener(a.runner, a.cfg.EditorOpenCommand, a.cwd, os.Environ(), openTimeout, a.logger)
	}
	return editor.NewWriterOpener(fallback)
}

// resolveScriptDir picks the first of: the flag, the setting, a scripts
// directory next to the executable, a share directory beside its bin
// directory, and ./scripts under cwd.
func resolveScriptDir(flag, setting, exeDir, cwd string) string {
	if flag != "" {
		return flag
	}
	if setting != "" {
		return setting
	}
	if exeDir != "" {
		for _, dir := range []string{
			filepath.Join(exeDir, "scripts"),
			filepath.Join(exeDir, "..", "share", "finditfaster", "scripts"),
		} {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return filepath.Clean(dir)
			}
		}
	}
	return filepath.Join(cwd, "scripts")
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// newStderrLogger is used by one-shot commands: text to stderr, warnings only
// unless verbose.
func newStderrLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// newFileLogger is used by the interactive menu, which owns the screen: JSON
// lines appended to path.
func newFileLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// defaultLogPath is ~/.local/state/finditfaster/finditfaster.log, or under
// $XDG_STATE_HOME when set.
func defaultLogPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, stateDir, logFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", stateDir, logFileName), nil
}
