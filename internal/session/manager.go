// Package session owns the long-lived terminal the search scripts run in and
// the canary file that reports when a run has finished.
package session

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// File names inside a session's private directory.
const (
	CanaryName    = "snitch"
	SelectionName = "selection"
	ExplainName   = "paths_explain"

	dirPrefix = "finditfaster-"
	banner    = `PS1="::: Terminal allocated for FindItFaster. Do not use. ::: " bash`
)

// State of the Manager's session slot.
type State int

const (
	StateAbsent State = iota
	StateActive
	StateExited
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateActive:
		return "active"
	case StateExited:
		return "exited"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Files are the paths shared with the scripts.
type Files struct {
	Dir       string
	Canary    string
	Selection string
	Explain   string
}

func newFiles(dir string) Files {
	return Files{
		Dir:       dir,
		Canary:    filepath.Join(dir, CanaryName),
		Selection: filepath.Join(dir, SelectionName),
		Explain:   filepath.Join(dir, ExplainName),
	}
}

// Session is one live terminal and its files.
type Session struct {
	ID       string
	Files    Files
	Terminal Terminal

	watcher  *Watcher
	degraded bool
}

// Degraded reports whether the canary was lost.
func (s *Session) Degraded() bool { return s.degraded }

// Manager keeps at most one Session. It is not safe for concurrent use; the
// control loop is its only caller.
type Manager struct {
	start   StartFunc
	events  chan<- SessionEvent
	logger  *slog.Logger
	tempDir string

	current *Session
	state   State
	watches int
}

// NewManager creates a Manager that launches terminals with start and sends
// canary events on events.
func NewManager(start StartFunc, events chan<- SessionEvent, logger *slog.Logger) *Manager {
	return &Manager{start: start, events: events, logger: logger}
}

// WithTempDir sets where session directories are created. Empty means
// os.TempDir().
func (m *Manager) WithTempDir(dir string) *Manager {
	m.tempDir = dir
	return m
}

// Current returns the live session, or nil.
func (m *Manager) Current() *Session {
	return m.current
}

// State returns the slot state, noticing an exited shell.
func (m *Manager) State() State {
	if m.state == StateActive && m.current.Terminal.Exited() {
		m.state = StateExited
	}
	return m.state
}

// ActiveWatches is the number of canary watches currently open.
func (m *Manager) ActiveWatches() int {
	return m.watches
}

// MarkDegraded flags the session with id as having lost its canary. The next
// Ensure replaces it.
func (m *Manager) MarkDegraded(id string) {
	if m.current != nil && m.current.ID == id {
		m.current.degraded = true
	}
}

// Ensure returns the live session, creating one when there is none, when the
// shell has exited or when the session is degraded.
func (m *Manager) Ensure(ctx context.Context, env Env) (*Session, error) {
	if m.State() == StateActive && !m.current.degraded {
		return m.current, nil
	}
	if m.current != nil {
		m.Dispose()
	}
	return m.create(ctx, env)
}

// Reprovision replaces the session so it picks up env.
func (m *Manager) Reprovision(ctx context.Context, env Env) (*Session, error) {
	m.Dispose()
	return m.create(ctx, env)
}

func (m *Manager) create(ctx context.Context, env Env) (*Session, error) {
	dir, err := os.MkdirTemp(m.tempDir, dirPrefix)
	if err != nil {
		return nil, &StartError{Stage: "temp dir", Cause: err}
	}
	files := newFiles(dir)
	if err := os.WriteFile(files.Canary, nil, 0o600); err != nil {
		removeFiles(files, m.logger)
		return nil, &StartError{Stage: "canary", Cause: err}
	}

	id := ulid.Make().String()
	t, err := m.start(ctx, StartOptions{
		Shell: env.Shell,
		Env:   append(os.Environ(), env.Vars(files)...),
		Dir:   env.WorkDir,
	})
	if err != nil {
		removeFiles(files, m.logger)
		return nil, &StartError{Stage: "terminal", Cause: err}
	}
	if err := t.SendText(banner); err != nil {
		m.logger.Debug("session_banner_failed", slog.String("error", err.Error()))
	}

	w, err := Watch(files.Canary, id, env.Debounce, m.events, m.logger)
	if err != nil {
		_ = t.Close()
		removeFiles(files, m.logger)
		return nil, &StartError{Stage: "watch", Cause: err}
	}
	m.watches++

	m.current = &Session{ID: id, Files: files, Terminal: t, watcher: w}
	m.state = StateActive
	m.logger.Info("session_started", slog.String("session", id), slog.String("dir", dir))
	return m.current, nil
}

// Dispose ends the current session and removes its files. Failures are only
// logged.
func (m *Manager) Dispose() {
	s := m.current
	if s == nil {
		return
	}
	m.current = nil
	m.state = StateDisposed

	if err := s.watcher.Close(); err != nil {
		m.logger.Debug("session_watch_close_failed", slog.String("session", s.ID), slog.String("error", err.Error()))
	}
	m.watches--
	if err := s.Terminal.Close(); err != nil {
		m.logger.Debug("session_terminal_close_failed", slog.String("session", s.ID), slog.String("error", err.Error()))
	}
	removeFiles(s.Files, m.logger)
	m.logger.Info("session_disposed", slog.String("session", s.ID))
}

func removeFiles(f Files, logger *slog.Logger) {
	for _, p := range []string{f.Canary, f.Selection, f.Explain, f.Dir} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Debug("session_cleanup_failed", slog.String("path", p), slog.String("error", err.Error()))
		}
	}
}
