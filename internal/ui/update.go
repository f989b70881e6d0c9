package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/command"
	"github.com/Cyclone1070/finditfaster/internal/orchestrator"
	"github.com/Cyclone1070/finditfaster/internal/ui/models"
	"github.com/Cyclone1070/finditfaster/internal/ui/services"
	"github.com/Cyclone1070/finditfaster/internal/ui/views"
	"github.com/Cyclone1070/finditfaster/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the space taken by the title, input box and status bar.
const chromeHeight = 4

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	renderer   services.MarkdownRenderer
	controller Controller
	cwd        string
	logger     *slog.Logger
	now        func() time.Time

	messages    <-chan models.Message
	viewsChan   <-chan orchestrator.View
	completions <-chan orchestrator.Completion
	readyChan   chan<- struct{}

	// query holds the selection while the input is borrowed for workspace roots.
	query string
}

func newBubbleTeaModel(ch *Channels, opts Options) BubbleTeaModel {
	ti := textinput.New()
	ti.Prompt = "query> "
	ti.Placeholder = "initial fzf query (optional)"

	sp := spinner.New()
	if opts.SpinnerFactory != nil {
		sp = opts.SpinnerFactory()
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = services.NewGlamourRenderer()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return BubbleTeaModel{
		state: models.State{
			Items:    models.DefaultItems(),
			Input:    ti,
			Viewport: viewport.New(80, 10),
			Spinner:  sp,
		},
		renderer:    renderer,
		controller:  opts.Controller,
		cwd:         opts.Cwd,
		logger:      logger,
		now:         time.Now,
		messages:    ch.Messages,
		viewsChan:   ch.Views,
		completions: ch.Completions,
		readyChan:   ch.Ready,
	}
}

// Internal messages
type messageReceivedMsg models.Message
type viewReceivedMsg orchestrator.View
type completionReceivedMsg orchestrator.Completion

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	if m.readyChan != nil {
		close(m.readyChan)
	}
	return tea.Batch(
		m.state.Spinner.Tick,
		listenForMessages(m.messages),
		listenForViews(m.viewsChan),
		listenForCompletions(m.completions),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.renderer)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = max(msg.Height-len(m.state.Items)-chromeHeight-3, 1)
		m.updateViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case messageReceivedMsg:
		m.appendMessage(models.Message(msg))
		return m, listenForMessages(m.messages)

	case viewReceivedMsg:
		m.state.View = orchestrator.View(msg)
		return m, listenForViews(m.viewsChan)

	case completionReceivedMsg:
		m.handleCompletion(orchestrator.Completion(msg))
		return m, listenForCompletions(m.completions)
	}

	if m.state.Mode != models.ModeMenu {
		var cmd tea.Cmd
		m.state.Input, cmd = m.state.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.ShowHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.state.ShowHelp = false
		}
		return m, nil
	}

	switch m.state.Mode {
	case models.ModeQuery:
		return m.handleQueryKey(msg)
	case models.ModeWorkspace:
		return m.handleWorkspaceKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.state.Cursor > 0 {
			m.state.Cursor--
		}
	case "down", "j":
		if m.state.Cursor < len(m.state.Items)-1 {
			m.state.Cursor++
		}
	case "enter":
		m.runSelected()
	case "/", "tab":
		m.state.Mode = models.ModeQuery
		return m, m.state.Input.Focus()
	case "w":
		m.query = m.state.Input.Value()
		m.state.Input.Prompt = "workspace> "
		m.state.Input.SetValue(strings.Join(m.state.View.WorkspaceRoots, " "))
		m.state.Mode = models.ModeWorkspace
		return m, m.state.Input.Focus()
	case "r":
		m.call("reload settings", m.controller.HandleConfigChange())
	case "?":
		m.state.ShowHelp = true
	}
	return m, nil
}

func (m BubbleTeaModel) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state.Mode = models.ModeMenu
		m.state.Input.Blur()
		m.runSelected()
		return m, nil
	case "esc", "tab":
		m.state.Mode = models.ModeMenu
		m.state.Input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m BubbleTeaModel) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		roots := workspace.Roots(strings.Fields(m.state.Input.Value()), m.cwd, m.logger)
		m.call("set workspace", m.controller.HandleWorkspaceChange(roots))
		m.restoreQuery()
		return m, nil
	case "esc":
		m.restoreQuery()
		return m, nil
	}
	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m *BubbleTeaModel) restoreQuery() {
	m.state.Input.Prompt = "query> "
	m.state.Input.SetValue(m.query)
	m.state.Input.Blur()
	m.state.Mode = models.ModeMenu
}

func (m *BubbleTeaModel) runSelected() {
	item, ok := m.state.Selected()
	if !ok {
		return
	}
	m.state.LastResult = ""
	m.call(item.Title, m.controller.Execute(item.ID, m.state.Input.Value()))
}

func (m *BubbleTeaModel) call(what string, err error) {
	if err != nil {
		m.appendMessage(models.Message{
			Level: models.LevelError,
			Text:  fmt.Sprintf("%s: %v", what, err),
			At:    m.now(),
		})
	}
}

func (m *BubbleTeaModel) handleCompletion(c orchestrator.Completion) {
	switch {
	case c.Err != nil:
		m.state.LastResult = fmt.Sprintf("%s failed", c.Command)
	case !c.Success:
		m.state.LastResult = fmt.Sprintf("%s cancelled", c.Command)
	default:
		m.state.LastResult = fmt.Sprintf("%s opened %d", c.Command, len(c.Records))
	}

	if c.Command == command.ListSearchLocations {
		rendered, err := m.renderer.Render(services.LocationsMarkdown(m.state.View), m.state.Width)
		if err != nil {
			rendered = services.LocationsMarkdown(m.state.View)
		}
		m.appendMessage(models.Message{Text: strings.TrimRight(rendered, "\n"), At: m.now()})
	}
}

func (m *BubbleTeaModel) appendMessage(msg models.Message) {
	m.state.Messages = append(m.state.Messages, msg)
	m.updateViewport()
}

func (m *BubbleTeaModel) updateViewport() {
	m.state.Viewport.SetContent(views.FormatLog(m.state.Messages, m.state.Width-10))
	m.state.Viewport.GotoBottom()
}

// Helper commands for listening to channels
func listenForMessages(ch <-chan models.Message) tea.Cmd {
	return func() tea.Msg {
		return messageReceivedMsg(<-ch)
	}
}

func listenForViews(ch <-chan orchestrator.View) tea.Cmd {
	return func() tea.Msg {
		return viewReceivedMsg(<-ch)
	}
}

func listenForCompletions(ch <-chan orchestrator.Completion) tea.Cmd {
	return func() tea.Msg {
		return completionReceivedMsg(<-ch)
	}
}
