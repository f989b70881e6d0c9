package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// DetachKey (Ctrl+]) on the bridged input hides the terminal.
const DetachKey = 0x1d

const (
	enterAltScreen = "\x1b[?1049h\x1b[H"
	leaveAltScreen = "\x1b[?1049l"
)

// PTYTerminal is a shell running on a pseudo-terminal. Its output is
// discarded while hidden; while shown it is bridged to a Surface.
type PTYTerminal struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	surface Surface
	logger  *slog.Logger

	exited   atomic.Bool
	exitedCh chan struct{}

	mu        sync.Mutex
	shown     bool
	maximized bool
	sink      io.Writer
	input     cancelreader.CancelReader
	inputDone chan struct{}
	restore   *term.State
}

// PTYStarter returns a StartFunc that shows terminals on surface.
func PTYStarter(surface Surface, logger *slog.Logger) StartFunc {
	return func(ctx context.Context, opts StartOptions) (Terminal, error) {
		return StartPTY(ctx, opts, surface, logger)
	}
}

// StartPTY launches opts.Shell on a new pty. The process outlives ctx; it is
// ended by Close.
func StartPTY(_ context.Context, opts StartOptions, surface Surface, logger *slog.Logger) (*PTYTerminal, error) {
	cmd := exec.Command(opts.Shell)
	cmd.Env = opts.Env
	cmd.Dir = opts.Dir

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, &StartError{Stage: "pty", Cause: err}
	}

	t := &PTYTerminal{
		cmd:      cmd,
		ptmx:     ptmx,
		surface:  surface,
		logger:   logger,
		exitedCh: make(chan struct{}),
		sink:     io.Discard,
	}
	go t.pump()
	go func() {
		err := cmd.Wait()
		t.exited.Store(true)
		close(t.exitedCh)
		logger.Debug("terminal_exited", slog.Int("pid", cmd.Process.Pid), slog.Any("error", err))
	}()
	return t, nil
}

func (t *PTYTerminal) pump() {
	buf := make([]byte, 4096)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			t.mu.Lock()
			w := t.sink
			t.mu.Unlock()
			_, _ = w.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (t *PTYTerminal) SendText(text string) error {
	_, err := io.WriteString(t.ptmx, text+"\n")
	return err
}

func (t *PTYTerminal) Show(maximized bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.shown {
		return nil
	}
	if t.surface == nil {
		return ErrNoSurface
	}
	if err := t.surface.Claim(); err != nil {
		return err
	}

	in := t.surface.Input()
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		if state, err := term.MakeRaw(fd); err == nil {
			t.restore = state
		}
		if err := pty.InheritSize(in, t.ptmx); err != nil {
			t.logger.Debug("terminal_resize_failed", slog.String("error", err.Error()))
		}
	}

	reader, err := cancelreader.NewReader(in)
	if err != nil {
		t.restoreInput()
		_ = t.surface.Yield()
		return err
	}

	out := t.surface.Output()
	if maximized {
		_, _ = io.WriteString(out, enterAltScreen)
	}
	t.maximized = maximized
	t.sink = out
	t.input = reader
	t.inputDone = make(chan struct{})
	t.shown = true
	go t.bridgeInput(reader, t.inputDone)
	return nil
}

func (t *PTYTerminal) bridgeInput(r io.Reader, done chan struct{}) {
	defer close(done)
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if i := bytes.IndexByte(chunk, DetachKey); i >= 0 {
				_, _ = t.ptmx.Write(chunk[:i])
				go func() { _ = t.Hide() }()
				return
			}
			_, _ = t.ptmx.Write(chunk)
		}
		if err != nil {
			return
		}
	}
}

func (t *PTYTerminal) Hide() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.shown {
		return nil
	}
	t.input.Cancel()
	<-t.inputDone
	_ = t.input.Close()

	if t.maximized {
		_, _ = io.WriteString(t.sink, leaveAltScreen)
	}
	t.restoreInput()
	t.sink = io.Discard
	t.shown = false
	return t.surface.Yield()
}

func (t *PTYTerminal) restoreInput() {
	if t.restore == nil {
		return
	}
	_ = term.Restore(int(t.surface.Input().Fd()), t.restore)
	t.restore = nil
}

func (t *PTYTerminal) Exited() bool {
	return t.exited.Load()
}

// Done is closed when the shell process ends.
func (t *PTYTerminal) Done() <-chan struct{} {
	return t.exitedCh
}

func (t *PTYTerminal) Close() error {
	hideErr := t.Hide()
	if !t.Exited() {
		_ = t.cmd.Process.Kill()
	}
	closeErr := t.ptmx.Close()
	if hideErr != nil {
		return hideErr
	}
	return closeErr
}
