package orchestrator

import "errors"

// ErrStopped is returned when a request arrives after the control loop ended.
var ErrStopped = errors.New("orchestrator is not running")

// ErrNotReady is reported when a command is run before a configuration has
// been resolved successfully.
var ErrNotReady = errors.New("configuration is not loaded; fix the settings file and try again")
