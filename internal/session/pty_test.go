package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type recordingSurface struct {
	in      *os.File
	out     *syncBuffer
	mu      sync.Mutex
	claims  int
	yields  int
	yielded chan struct{}
}

func (s *recordingSurface) Input() *os.File { return s.in }
func (s *recordingSurface) Output() io.Writer {
	return s.out
}

func (s *recordingSurface) Claim() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims++
	return nil
}

func (s *recordingSurface) Yield() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.yields++
	select {
	case s.yielded <- struct{}{}:
	default:
	}
	return nil
}

func skipPTY(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported")
	}
}

func startShell(t *testing.T, surface Surface) *PTYTerminal {
	t.Helper()
	term, err := StartPTY(context.Background(), StartOptions{Shell: "sh", Env: os.Environ()}, surface, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = term.Close() })
	return term
}

func TestPTYTerminal_SendText_RunsInShell(t *testing.T) {
	skipPTY(t)
	marker := filepath.Join(t.TempDir(), "marker")
	term := startShell(t, nil)

	require.NoError(t, term.SendText("echo ran > '"+marker+"'"))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && string(data) == "ran\n"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestPTYTerminal_Show_WithoutSurface(t *testing.T) {
	skipPTY(t)
	term := startShell(t, nil)
	assert.ErrorIs(t, term.Show(false), ErrNoSurface)
}

func TestPTYTerminal_Exit_Detected(t *testing.T) {
	skipPTY(t)
	term := startShell(t, nil)
	assert.False(t, term.Exited())

	require.NoError(t, term.SendText("exit"))

	select {
	case <-term.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("shell did not exit")
	}
	assert.True(t, term.Exited())
}

func TestPTYTerminal_Bridge_AndDetach(t *testing.T) {
	skipPTY(t)
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	surface := &recordingSurface{in: r, out: &syncBuffer{}, yielded: make(chan struct{}, 1)}
	term := startShell(t, surface)
	marker := filepath.Join(t.TempDir(), "bridged")

	require.NoError(t, term.Show(false))
	require.NoError(t, term.Show(false))
	_, err = w.WriteString("echo bridged > '" + marker + "'\n")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(surface.out.String()), []byte("bridged"))
	}, 3*time.Second, 20*time.Millisecond)

	_, err = w.Write([]byte{DetachKey})
	require.NoError(t, err)

	select {
	case <-surface.yielded:
	case <-time.After(3 * time.Second):
		t.Fatal("detach key did not hide the terminal")
	}
	surface.mu.Lock()
	assert.Equal(t, 1, surface.claims)
	assert.Equal(t, 1, surface.yields)
	surface.mu.Unlock()
}
