package models

import (
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Level is the severity of a log message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Message is one line in the message log.
type Message struct {
	Level Level
	Text  string
	At    time.Time
}

// MenuItem is one runnable command.
type MenuItem struct {
	ID          command.ID
	Title       string
	Description string
}

// Mode decides where key presses go.
type Mode int

const (
	ModeMenu Mode = iota
	ModeQuery
	ModeWorkspace
)

// State holds everything the views render.
type State struct {
	Width  int
	Height int

	Items  []MenuItem
	Cursor int
	Mode   Mode

	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Messages []Message
	View     orchestrator.View
	ShowHelp bool

	// LastResult summarizes the most recent completion.
	LastResult string
}

// Selected returns the item under the cursor.
func (s State) Selected() (MenuItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return MenuItem{}, false
	}
	return s.Items[s.Cursor], true
}

// DefaultItems lists the commands in menu order.
func DefaultItems() []MenuItem {
	return []MenuItem{
		{ID: command.FindFiles, Title: "Find files", Description: "fuzzy search file names"},
		{ID: command.FindWithinFiles, Title: "Find within files", Description: "fuzzy search file contents"},
		{ID: command.ListSearchLocations, Title: "List search locations", Description: "show which paths are searched and why"},
		{ID: command.FlightCheck, Title: "Flight check", Description: "verify bat, fzf and rg are installed"},
	}
}
