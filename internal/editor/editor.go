// Package editor is the boundary to whatever shows messages to the user and
// opens documents.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/executor"
	"github.com/Cyclone1070/finditfaster/internal/result"
)

// Host surfaces messages to the user.
type Host interface {
	ShowError(msg string)
	ShowWarning(msg string)
	ShowInfo(msg string)
}

// Opener opens a document with the cursor at a 0-based position.
type Opener interface {
	Open(ctx context.Context, rec result.Record) error
}

// Placeholders understood in an open command template. Line and column are
// 1-based, as editors expect on their command line.
const (
	PlaceholderPath   = "{path}"
	PlaceholderLine   = "{line}"
	PlaceholderColumn = "{column}"
)

// CommandOpener opens records by running a command built from a template
// such as ["code", "-g", "{path}:{line}:{column}"].
type CommandOpener struct {
	runner   executor.Runner
	template []string
	dir      string
	env      []string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewCommandOpener creates an opener that runs template in dir.
func NewCommandOpener(runner executor.Runner, template []string, dir string, env []string, timeout time.Duration, logger *slog.Logger) *CommandOpener {
	return &CommandOpener{runner: runner, template: template, dir: dir, env: env, timeout: timeout, logger: logger}
}

// Expand fills the placeholders of template for rec.
func Expand(template []string, rec result.Record) []string {
	r := strings.NewReplacer(
		PlaceholderPath, rec.Path,
		PlaceholderLine, strconv.Itoa(rec.Line+1),
		PlaceholderColumn, strconv.Itoa(rec.Column+1),
	)
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = r.Replace(arg)
	}
	return out
}

func (o *CommandOpener) Open(ctx context.Context, rec result.Record) error {
	args := Expand(o.template, rec)
	o.logger.Debug("editor_open", slog.Any("argv", args))

	res, err := o.runner.RunWithTimeout(ctx, args, o.dir, o.env, o.timeout)
	if err != nil {
		if res != nil && res.Stderr != "" {
			return &OpenError{Path: rec.Path, Cause: fmt.Errorf("%w: %s", err, strings.TrimSpace(res.Stderr))}
		}
		return &OpenError{Path: rec.Path, Cause: err}
	}
	return nil
}

// WriterOpener "opens" records by printing them as path:line:column, 1-based,
// one per line.
type WriterOpener struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterOpener creates an opener that prints to out.
func NewWriterOpener(out io.Writer) *WriterOpener {
	return &WriterOpener{out: out}
}

func (o *WriterOpener) Open(_ context.Context, rec result.Record) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := fmt.Fprintf(o.out, "%s:%d:%d\n", rec.Path, rec.Line+1, rec.Column+1); err != nil {
		return &OpenError{Path: rec.Path, Cause: err}
	}
	return nil
}

// OpenError is returned when a document could not be opened.
type OpenError struct {
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Cause)
}

func (e *OpenError) Unwrap() error { return e.Cause }
func (e *OpenError) IOError() bool { return true }

// LogHost reports messages through a logger and echoes them to out.
type LogHost struct {
	logger *slog.Logger
	out    io.Writer
}

// NewLogHost creates a Host for non-interactive use.
func NewLogHost(logger *slog.Logger, out io.Writer) *LogHost {
	return &LogHost{logger: logger, out: out}
}

func (h *LogHost) ShowError(msg string) {
	h.logger.Error("host_error", slog.String("message", msg))
	fmt.Fprintln(h.out, "error: "+msg)
}

func (h *LogHost) ShowWarning(msg string) {
	h.logger.Warn("host_warning", slog.String("message", msg))
	fmt.Fprintln(h.out, "warning: "+msg)
}

func (h *LogHost) ShowInfo(msg string) {
	h.logger.Info("host_info", slog.String("message", msg))
	fmt.Fprintln(h.out, msg)
}
