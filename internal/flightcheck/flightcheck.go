// Package flightcheck verifies the platform and the external tools before the
// first session is started.
package flightcheck

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/executor"
)

// Required maps the script's report keys to the tool they locate, in the
// order problems are reported.
var Required = []struct {
	Key  string
	Tool string
}{
	{"which bat", "bat"},
	{"which fzf", "fzf"},
	{"which rg", "rg"},
}

// Checker runs the flight check script.
type Checker struct {
	runner  executor.Runner
	timeout time.Duration
	logger  *slog.Logger
	goos    string
}

// NewChecker creates a Checker for the current platform.
func NewChecker(runner executor.Runner, timeout time.Duration, logger *slog.Logger) *Checker {
	return &Checker{runner: runner, timeout: timeout, logger: logger, goos: runtime.GOOS}
}

// WithGOOS overrides the detected platform.
func (c *Checker) WithGOOS(goos string) *Checker {
	c.goos = goos
	return c
}

// Run executes spec (the flightCheck command) through sh and inspects its
// report. It returns nil only if every required tool was located.
func (c *Checker) Run(ctx context.Context, spec command.Spec, env []string) error {
	if c.goos == "windows" {
		return &UnsupportedPlatformError{OS: c.goos}
	}

	line, err := command.Build(spec, command.BuildInput{})
	if err != nil {
		return &ScriptError{Cause: err}
	}

	res, err := c.runner.RunWithTimeout(ctx, []string{"sh", "-c", line}, "", env, c.timeout)
	if err != nil {
		return &ScriptError{Cause: err}
	}

	report := ParseReport(res.Stdout)
	c.logger.Debug("flight_check_report", slog.Any("report", report))

	var missing []string
	for _, r := range Required {
		if report[r.Key] == "" {
			missing = append(missing, r.Tool)
		}
	}
	if len(missing) > 0 {
		return &ToolMissingError{Tools: missing}
	}
	return nil
}

// ParseReport reads "key: value" lines. Lines without the separator are
// skipped; a later duplicate key wins.
func ParseReport(out string) map[string]string {
	kvs := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		kvs[k] = v
	}
	return kvs
}
