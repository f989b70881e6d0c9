package workspace

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestFileURI_RoundTrips(t *testing.T) {
	path := "/home/user/my project"

	uri := FileURI(path)

	assert.Equal(t, "file:///home/user/my%20project", uri)
	got, err := search.FilePathFromURI(uri)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestRoots_Explicit(t *testing.T) {
	roots := Roots([]string{"/abs/a", "rel/b", "vscode-vfs://github/x"}, "/cwd", discard())

	assert.Equal(t, []string{"file:///abs/a", "file:///cwd/rel/b", "vscode-vfs://github/x"}, roots)
}

func TestRoots_GitDiscovery(t *testing.T) {
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	sub := filepath.Join(repoDir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	roots := Roots(nil, sub, discard())

	require.Len(t, roots, 1)
	got, err := search.FilePathFromURI(roots[0])
	require.NoError(t, err)
	wantRoot, err := filepath.EvalSymlinks(repoDir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestRoots_NoRepo_NoWorkspace(t *testing.T) {
	assert.Empty(t, Roots(nil, t.TempDir(), discard()))
}
