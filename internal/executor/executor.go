// Package executor runs short-lived helper processes (the flight check script,
// the editor open command) and captures their output within a size limit.
package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/config"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Runner is what callers depend on, so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*Result, error)
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error)
}

// OSCommandExecutor implements Runner with os/exec.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run executes a command until it exits or ctx is cancelled.
func (f *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	outCap, errCap, err := f.start(cmd, command[0], dir, env)
	if err != nil {
		return nil, err
	}

	err = cmd.Wait()
	return f.result(outCap, errCap, exitCode(err)), err
}

// RunWithTimeout executes a command, interrupting it after timeout and
// killing it if it is still alive after the configured grace period.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	// Not CommandContext: a timeout gets SIGINT first, not an immediate kill.
	cmd := exec.Command(command[0], command[1:]...)
	outCap, errCap, err := f.start(cmd, command[0], dir, env)
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(f.config.GracefulShutdown()):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	code := exitCode(execErr)
	if errors.Is(execErr, ErrTimeout) {
		code = -1
	}
	return f.result(outCap, errCap, code), execErr
}

// start wires output capture and starts cmd. os/exec copies the output and
// Wait returns only once both copies are done. WaitDelay bounds that wait
// when a grandchild still holds the pipes after the process itself exited.
func (f *OSCommandExecutor) start(cmd *exec.Cmd, name, dir string, env []string) (*lineCapture, *lineCapture, error) {
	maxBytes := int(f.config.MaxCommandOutputSize)
	outCap := newLineCapture(maxBytes)
	errCap := newLineCapture(maxBytes)

	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = outCap
	cmd.Stderr = errCap
	cmd.WaitDelay = f.config.GracefulShutdown()

	if err := cmd.Start(); err != nil {
		return nil, nil, &CommandError{Cmd: name, Cause: err, Stage: "start"}
	}
	return outCap, errCap, nil
}

func (f *OSCommandExecutor) result(outCap, errCap *lineCapture, code int) *Result {
	return &Result{
		Stdout:    outCap.String(),
		Stderr:    errCap.String(),
		ExitCode:  code,
		Truncated: outCap.Truncated() || errCap.Truncated(),
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}
