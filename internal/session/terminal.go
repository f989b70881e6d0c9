package session

import (
	"context"
	"io"
	"os"
)

// Terminal is the interactive shell a session types commands into.
type Terminal interface {
	// SendText types text followed by a newline.
	SendText(text string) error
	// Show puts the terminal in front of the user. It does not block.
	Show(maximized bool) error
	Hide() error
	// Exited reports whether the shell process has ended.
	Exited() bool
	Close() error
}

// StartOptions is what a StartFunc launches.
type StartOptions struct {
	Shell string
	Env   []string
	Dir   string
}

// StartFunc launches a Terminal.
type StartFunc func(ctx context.Context, opts StartOptions) (Terminal, error)

// Surface is the screen a terminal is shown on. Claim is called before the
// terminal takes over Input and Output, Yield after it lets go.
type Surface interface {
	Input() *os.File
	Output() io.Writer
	Claim() error
	Yield() error
}

// StdioSurface is a Surface over a pair of files, typically the process's
// own stdin and stdout. The hooks let a full-screen host step aside.
type StdioSurface struct {
	In      *os.File
	Out     io.Writer
	OnClaim func() error
	OnYield func() error
}

func (s *StdioSurface) Input() *os.File   { return s.In }
func (s *StdioSurface) Output() io.Writer { return s.Out }

func (s *StdioSurface) Claim() error {
	if s.OnClaim == nil {
		return nil
	}
	return s.OnClaim()
}

func (s *StdioSurface) Yield() error {
	if s.OnYield == nil {
		return nil
	}
	return s.OnYield()
}
