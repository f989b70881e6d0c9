package flightcheck

import (
	"fmt"
	"strings"
)

// UnsupportedPlatformError is returned on native Windows, where the scripts
// cannot run.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	return "Native Windows support does not exist at this point in time. You can however run inside a Remote-WSL workspace. See the README for more information."
}

func (e *UnsupportedPlatformError) InvalidInput() bool { return true }

// ToolMissingError lists every required tool the check script could not find.
type ToolMissingError struct {
	Tools []string
}

func (e *ToolMissingError) Error() string {
	var sb strings.Builder
	sb.WriteString("Failed to activate plugin: ")
	for _, t := range e.Tools {
		fmt.Fprintf(&sb, "%s not found on your PATH. ", t)
	}
	sb.WriteString("Make sure you have the required command line tools installed as outlined in the README.")
	return sb.String()
}

func (e *ToolMissingError) InvalidInput() bool { return true }

// ScriptError is returned when the check script itself could not be run.
type ScriptError struct {
	Cause error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("Failed to run checks before starting. Maybe this is helpful: %v", e.Cause)
}

func (e *ScriptError) Unwrap() error { return e.Cause }
func (e *ScriptError) IOError() bool { return true }
