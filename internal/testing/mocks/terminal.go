package mocks

import "sync"

// MockTerminal records what a session does with its terminal.
type MockTerminal struct {
	mu sync.Mutex

	Sent        []string
	ShowCalls   int
	HideCalls   int
	Maximized   bool
	Visible     bool
	Closed      bool
	HasExited   bool
	SendTextErr error
	ShowErr     error
}

func (m *MockTerminal) SendText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendTextErr != nil {
		return m.SendTextErr
	}
	m.Sent = append(m.Sent, text)
	return nil
}

func (m *MockTerminal) Show(maximized bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShowErr != nil {
		return m.ShowErr
	}
	m.ShowCalls++
	m.Maximized = maximized
	m.Visible = true
	return nil
}

func (m *MockTerminal) Hide() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HideCalls++
	m.Visible = false
	return nil
}

func (m *MockTerminal) Exited() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HasExited
}

func (m *MockTerminal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	m.Visible = false
	return nil
}

// Exit marks the shell as gone.
func (m *MockTerminal) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HasExited = true
}

// SentText returns a copy of everything typed so far.
func (m *MockTerminal) SentText() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Sent))
	copy(out, m.Sent)
	return out
}

// IsVisible reports whether the terminal is shown.
func (m *MockTerminal) IsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Visible
}
