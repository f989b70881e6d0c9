package command

import "fmt"

// UnknownCommandError is returned for an id missing from the registry.
type UnknownCommandError struct {
	ID string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.ID)
}

func (e *UnknownCommandError) InvalidInput() bool { return true }

// SelectionWriteError is returned when the selection could not be handed off.
type SelectionWriteError struct {
	Path  string
	Cause error
}

func (e *SelectionWriteError) Error() string {
	return fmt.Sprintf("failed to write selection file %s: %v", e.Path, e.Cause)
}

func (e *SelectionWriteError) Unwrap() error { return e.Cause }
func (e *SelectionWriteError) IOError() bool { return true }
