// Package ui is the interactive host: a Bubble Tea menu that drives the
// orchestrator and steps aside whenever a search terminal is on screen.
package ui

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/Cyclone1070/finditfaster/internal/session"
	"github.com/Cyclone1070/finditfaster/internal/ui/models"
	"github.com/Cyclone1070/finditfaster/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Controller is the part of the orchestrator the UI drives.
type Controller interface {
	Execute(id command.ID, selection string) error
	HandleConfigChange() error
	HandleWorkspaceChange(roots []string) error
}

// SpinnerFactory creates a new spinner.
type SpinnerFactory func() spinner.Model

// Channels carry orchestrator output into the Bubble Tea loop.
type Channels struct {
	Messages    chan models.Message
	Views       chan orchestrator.View
	Completions chan orchestrator.Completion
	Ready       chan struct{}
}

// NewChannels creates Channels with default buffers.
func NewChannels() *Channels {
	return &Channels{
		Messages:    make(chan models.Message, 64),
		Views:       make(chan orchestrator.View, 16),
		Completions: make(chan orchestrator.Completion, 16),
		Ready:       make(chan struct{}),
	}
}

// UI implements editor.Host on top of a Bubble Tea program.
type UI struct {
	program  *tea.Program
	channels *Channels
	now      func() time.Time
}

// Options configure NewUI.
type Options struct {
	Controller     Controller
	Renderer       services.MarkdownRenderer
	SpinnerFactory SpinnerFactory
	// Cwd resolves relative workspace roots typed into the UI.
	Cwd    string
	Logger *slog.Logger
	// ProgramOptions are passed to tea.NewProgram after the defaults.
	ProgramOptions []tea.ProgramOption
}

// NewUI creates the UI. Nothing is drawn until Start.
func NewUI(channels *Channels, opts Options) *UI {
	model := newBubbleTeaModel(channels, opts)
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts.ProgramOptions...)
	return &UI{
		program:  tea.NewProgram(model, programOpts...),
		channels: channels,
		now:      time.Now,
	}
}

// Start runs the program until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// Quit asks the program to exit.
func (u *UI) Quit() {
	u.program.Quit()
}

// Ready is closed once the program has started.
func (u *UI) Ready() <-chan struct{} {
	return u.channels.Ready
}

func (u *UI) post(level models.Level, msg string) {
	select {
	case u.channels.Messages <- models.Message{Level: level, Text: msg, At: u.now()}:
	default:
		// Drop if channel is full
	}
}

func (u *UI) ShowError(msg string)   { u.post(models.LevelError, msg) }
func (u *UI) ShowWarning(msg string) { u.post(models.LevelWarning, msg) }
func (u *UI) ShowInfo(msg string)    { u.post(models.LevelInfo, msg) }

// OnChange forwards a new orchestrator view. When the buffer is full the
// oldest pending view is discarded, so the newest one always gets through.
func (u *UI) OnChange(v orchestrator.View) {
	for {
		select {
		case u.channels.Views <- v:
			return
		default:
		}
		select {
		case <-u.channels.Views:
		default:
		}
	}
}

// OnComplete forwards a finished run.
func (u *UI) OnComplete(c orchestrator.Completion) {
	select {
	case u.channels.Completions <- c:
	default:
	}
}

// Surface returns a terminal surface over in and out that suspends the
// program while a search terminal is visible.
func (u *UI) Surface(in *os.File, out io.Writer) *session.StdioSurface {
	return &session.StdioSurface{
		In:      in,
		Out:     out,
		OnClaim: u.program.ReleaseTerminal,
		OnYield: u.program.RestoreTerminal,
	}
}

// Writer returns a writer whose lines show up as info messages.
func (u *UI) Writer() io.Writer {
	pr, pw := io.Pipe()
	go func() {
		sc := bufio.NewScanner(pr)
		for sc.Scan() {
			u.ShowInfo(sc.Text())
		}
	}()
	return pw
}
