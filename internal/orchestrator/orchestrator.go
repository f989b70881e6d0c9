// Package orchestrator runs the control loop: it owns the system state,
// turns requests into terminal invocations and canary events into opened
// documents.
package orchestrator

import (
	"context"
	"log/slog"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/editor"
	"github.com/Cyclone1070/finditfaster/internal/result"
	"github.com/Cyclone1070/finditfaster/internal/session"
)

// SettingsSource supplies the merged settings on every (re)initialization.
type SettingsSource interface {
	LoadSettings() (config.Settings, error)
}

// FlightChecker verifies that the external tools are installed.
type FlightChecker interface {
	Run(ctx context.Context, spec command.Spec, env []string) error
}

// Completion describes one finished run, as reported by the canary.
type Completion struct {
	SessionID string
	Command   command.ID
	Success   bool
	Records   []result.Record
	Err       error
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Registry *command.Registry
	Start    session.StartFunc
	Checker  FlightChecker
	Opener   editor.Opener
	Host     editor.Host
	Settings SettingsSource
	Logger   *slog.Logger

	Cwd            string
	WorkspaceRoots []string
	// TempDir holds session directories. Empty means os.TempDir().
	TempDir string

	// OnComplete, if set, is called on the control loop after each run.
	OnComplete func(Completion)
	// OnChange, if set, is called on the control loop whenever the view
	// may have changed.
	OnChange func(View)
}

type requestKind int

const (
	reqExecute requestKind = iota
	reqConfigChange
	reqWorkspaceChange
	reqInspect
)

type request struct {
	kind      requestKind
	command   command.ID
	selection string
	roots     []string
	reply     chan View
}

// Orchestrator serializes every state change through Run.
type Orchestrator struct {
	deps     Deps
	logger   *slog.Logger
	sessions *session.Manager
	events   chan session.SessionEvent
	requests chan request
	stopped  chan struct{}

	state SystemState
}

// New creates an Orchestrator. Nothing happens until Run.
func New(deps Deps) *Orchestrator {
	events := make(chan session.SessionEvent, 16)
	o := &Orchestrator{
		deps:     deps,
		logger:   deps.Logger,
		events:   events,
		requests: make(chan request, 16),
		stopped:  make(chan struct{}),
		sessions: session.NewManager(deps.Start, events, deps.Logger).WithTempDir(deps.TempDir),
	}
	o.state.WorkspaceRoots = deps.WorkspaceRoots
	return o
}

// Run initializes and then serves requests and session events until ctx is
// done. The session is disposed on return.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer close(o.stopped)
	defer o.sessions.Dispose()

	o.reinitialize(ctx)
	o.changed()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("orchestrator_stopping")
			return nil
		case req := <-o.requests:
			o.handle(ctx, req)
		case ev := <-o.events:
			o.handleSessionEvent(ctx, ev)
			o.changed()
		}
	}
}

func (o *Orchestrator) handle(ctx context.Context, req request) {
	switch req.kind {
	case reqExecute:
		o.execute(ctx, req.command, req.selection)
	case reqConfigChange:
		o.reinitialize(ctx)
	case reqWorkspaceChange:
		o.state.WorkspaceRoots = req.roots
		o.resolveLocations()
	case reqInspect:
		req.reply <- o.view()
		return
	}
	o.changed()
}

func (o *Orchestrator) changed() {
	if o.deps.OnChange != nil {
		o.deps.OnChange(o.view())
	}
}

func (o *Orchestrator) enqueue(req request) error {
	select {
	case <-o.stopped:
		return ErrStopped
	default:
	}
	select {
	case o.requests <- req:
		return nil
	case <-o.stopped:
		return ErrStopped
	}
}

// Execute queues command id. It returns as soon as the request is queued;
// completion is only observable through OnComplete.
func (o *Orchestrator) Execute(id command.ID, selection string) error {
	return o.enqueue(request{kind: reqExecute, command: id, selection: selection})
}

// HandleConfigChange re-reads settings, re-resolves search locations and
// replaces the session, all in one step of the control loop.
func (o *Orchestrator) HandleConfigChange() error {
	return o.enqueue(request{kind: reqConfigChange})
}

// HandleWorkspaceChange replaces the workspace roots and re-resolves search
// locations. The session is kept.
func (o *Orchestrator) HandleWorkspaceChange(roots []string) error {
	return o.enqueue(request{kind: reqWorkspaceChange, roots: roots})
}

// Inspect returns a copy of the current view.
func (o *Orchestrator) Inspect(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := o.enqueue(request{kind: reqInspect, reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-o.stopped:
		return View{}, ErrStopped
	}
}

// Done is closed once Run has returned.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.stopped
}
