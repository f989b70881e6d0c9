package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/Cyclone1070/finditfaster/internal/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStarter struct {
	terminals []*mocks.MockTerminal
	opts      []StartOptions
	err       error
}

func (f *fakeStarter) start(_ context.Context, opts StartOptions) (Terminal, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := &mocks.MockTerminal{}
	f.terminals = append(f.terminals, t)
	f.opts = append(f.opts, opts)
	return t, nil
}

func newTestManager(t *testing.T) (*Manager, *fakeStarter, chan SessionEvent) {
	t.Helper()
	skipWatchOnWindows(t)
	starter := &fakeStarter{}
	events := make(chan SessionEvent, 8)
	m := NewManager(starter.start, events, discardLogger()).WithTempDir(t.TempDir())
	t.Cleanup(m.Dispose)
	return m, starter, events
}

func testEnv() Env {
	cfg := config.DefaultConfig()
	env := EnvFromConfig(cfg, nil, "")
	env.Debounce = 10 * time.Millisecond
	return env
}

func TestManager_Ensure_CreatesSession(t *testing.T) {
	m, starter, _ := newTestManager(t)
	assert.Equal(t, StateAbsent, m.State())

	s, err := m.Ensure(context.Background(), testEnv())

	require.NoError(t, err)
	assert.Equal(t, StateActive, m.State())
	assert.NotEmpty(t, s.ID)
	assert.FileExists(t, s.Files.Canary)
	assert.Equal(t, CanaryName, s.Files.Canary[len(s.Files.Dir)+1:])
	assert.Equal(t, 1, m.ActiveWatches())

	require.Len(t, starter.terminals, 1)
	assert.Equal(t, "bash", starter.opts[0].Shell)
	assert.Contains(t, starter.opts[0].Env, "CANARY_FILE="+s.Files.Canary)
	assert.Equal(t, []string{banner}, starter.terminals[0].SentText())
}

func TestManager_Ensure_ReusesLiveSession(t *testing.T) {
	m, starter, _ := newTestManager(t)

	first, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)
	second, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, starter.terminals, 1)
}

func TestManager_Ensure_ReplacesExitedSession(t *testing.T) {
	m, starter, _ := newTestManager(t)

	first, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)
	starter.terminals[0].Exit()
	assert.Equal(t, StateExited, m.State())

	second, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, starter.terminals, 2)
	assert.True(t, starter.terminals[0].Closed)
	assert.NoDirExists(t, first.Files.Dir)
	assert.Equal(t, 1, m.ActiveWatches())
}

func TestManager_Ensure_ReplacesDegradedSession(t *testing.T) {
	m, _, _ := newTestManager(t)

	first, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)
	m.MarkDegraded(first.ID)
	assert.True(t, first.Degraded())

	second, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestManager_Reprovision_FreshPathsSingleWatch(t *testing.T) {
	m, starter, events := newTestManager(t)

	first, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)

	env := testEnv()
	env.Globs = "!changed:"
	second, err := m.Reprovision(context.Background(), env)
	require.NoError(t, err)

	assert.NotEqual(t, first.Files.Dir, second.Files.Dir)
	assert.NotEqual(t, first.Files.Canary, second.Files.Canary)
	assert.NoFileExists(t, first.Files.Canary)
	assert.Equal(t, 1, m.ActiveWatches())
	assert.Contains(t, starter.opts[1].Env, "GLOBS=!changed:")

	// Only the new canary is watched.
	require.NoError(t, os.WriteFile(second.Files.Canary, []byte("a.go\n"), 0o600))
	ev := waitEvent(t, events)
	assert.Equal(t, second.ID, ev.SessionID)
}

func TestManager_Dispose(t *testing.T) {
	m, starter, _ := newTestManager(t)
	s, err := m.Ensure(context.Background(), testEnv())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Files.Selection, []byte("q"), 0o600))

	m.Dispose()
	m.Dispose()

	assert.Equal(t, StateDisposed, m.State())
	assert.Nil(t, m.Current())
	assert.Equal(t, 0, m.ActiveWatches())
	assert.True(t, starter.terminals[0].Closed)
	assert.NoDirExists(t, s.Files.Dir)
}

func TestManager_StartFailure_CleansUp(t *testing.T) {
	skipWatchOnWindows(t)
	tmp := t.TempDir()
	starter := &fakeStarter{err: errors.New("no pty")}
	m := NewManager(starter.start, make(chan SessionEvent), discardLogger()).WithTempDir(tmp)

	s, err := m.Ensure(context.Background(), testEnv())

	assert.Nil(t, s)
	var startErr *StartError
	require.True(t, errors.As(err, &startErr))
	assert.Equal(t, "terminal", startErr.Stage)
	entries, readErr := os.ReadDir(tmp)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	assert.Equal(t, StateAbsent, m.State())
}
