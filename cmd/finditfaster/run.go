package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/editor"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/Cyclone1070/finditfaster/internal/session"
	"github.com/Cyclone1070/finditfaster/internal/ui"
	"github.com/Cyclone1070/finditfaster/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/sync/errgroup"
)

// errNothingPicked is returned when a search ended without a selection.
var errNothingPicked = errors.New("nothing picked")

// controllerRef lets the UI be built before the orchestrator it drives.
type controllerRef struct {
	orch *orchestrator.Orchestrator
}

func (c *controllerRef) Execute(id command.ID, selection string) error {
	return c.orch.Execute(id, selection)
}

func (c *controllerRef) HandleConfigChange() error {
	return c.orch.HandleConfigChange()
}

func (c *controllerRef) HandleWorkspaceChange(roots []string) error {
	return c.orch.HandleWorkspaceChange(roots)
}

func runUI(ctx context.Context, opts *options, stderr io.Writer) error {
	logPath, err := defaultLogPath()
	if err != nil {
		return err
	}
	logger, closer, err := newFileLogger(logPath, opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = closer.Close() }()

	a, err := newApp(opts, logger, stderr)
	if err != nil {
		return err
	}

	ref := &controllerRef{}
	u := ui.NewUI(ui.NewChannels(), ui.Options{
		Controller: ref,
		Renderer:   services.NewGlamourRenderer(),
		SpinnerFactory: func() spinner.Model {
			return spinner.New(spinner.WithSpinner(spinner.Dot))
		},
		Cwd:    a.cwd,
		Logger: logger,
	})

	deps := a.deps(u, u.Surface(os.Stdin, os.Stdout), a.opener(u.Writer()))
	deps.OnChange = u.OnChange
	deps.OnComplete = u.OnComplete
	orch := orchestrator.New(deps)
	ref.orch = orch

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error { return orch.Run(runCtx) })
	g.Go(func() error {
		return config.Watch(runCtx, a.loader.Candidates(), a.cfg.CanaryDebounce()*4, logger, func() {
			if err := orch.HandleConfigChange(); err != nil {
				logger.Debug("config_change_dropped")
			}
		})
	})
	g.Go(func() error {
		defer cancel()
		return u.Start()
	})
	g.Go(func() error {
		<-runCtx.Done()
		u.Quit()
		return nil
	})
	return g.Wait()
}

func runOneShot(ctx context.Context, opts *options, id command.ID, query string, stdout, stderr io.Writer) error {
	logger := newStderrLogger(stderr, opts.verbose)
	a, err := newApp(opts, logger, stderr)
	if err != nil {
		return err
	}

	done := make(chan orchestrator.Completion, 1)
	surface := &session.StdioSurface{In: os.Stdin, Out: stdout}
	deps := a.deps(editor.NewLogHost(logger, stderr), surface, a.opener(stdout))
	deps.OnComplete = func(c orchestrator.Completion) {
		select {
		case done <- c:
		default:
		}
	}
	orch := orchestrator.New(deps)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error { return orch.Run(runCtx) })

	var outcome orchestrator.Completion
	g.Go(func() error {
		defer cancel()
		if err := orch.Execute(id, query); err != nil {
			return err
		}
		select {
		case outcome = <-done:
		case <-runCtx.Done():
			return runCtx.Err()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	switch {
	case outcome.Err != nil:
		return outcome.Err
	case !outcome.Success && id != command.ListSearchLocations:
		return errNothingPicked
	}
	return nil
}

func runFlightCheck(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	logger := newStderrLogger(stderr, opts.verbose)
	a, err := newApp(opts, logger, stderr)
	if err != nil {
		return err
	}
	spec, err := a.registry.Get(command.FlightCheck)
	if err != nil {
		return err
	}
	if err := a.checker().Run(ctx, spec, os.Environ()); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "All required tools found: bat, fzf, rg.")
	return nil
}
