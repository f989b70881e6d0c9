package session

import (
	"errors"
	"fmt"
)

// ErrNoSurface is returned by Show when the terminal has nowhere to render.
var ErrNoSurface = errors.New("no surface to show the terminal on")

// SessionIntegrityError is raised when the canary file is renamed or removed
// out from under a live session.
type SessionIntegrityError struct {
	Path      string
	SessionID string
}

func (e *SessionIntegrityError) Error() string {
	return "Issue detected with extension FindItFaster. You may have to reload it."
}

func (e *SessionIntegrityError) IOError() bool { return true }

// CanaryReadError is raised when the canary changed but could not be read.
type CanaryReadError struct {
	Path  string
	Cause error
}

func (e *CanaryReadError) Error() string {
	return "Something went wrong but we don't know what... Did you clean out your /tmp folder?"
}

func (e *CanaryReadError) Unwrap() error { return e.Cause }
func (e *CanaryReadError) Warning() bool { return true }

// StartError wraps a failure to provision a session.
type StartError struct {
	Stage string
	Cause error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start session at %s: %v", e.Stage, e.Cause)
}

func (e *StartError) Unwrap() error { return e.Cause }
func (e *StartError) IOError() bool { return true }
