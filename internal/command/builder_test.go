package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, r *Registry, id ID) Spec {
	t.Helper()
	spec, err := r.Get(id)
	require.NoError(t, err)
	return spec
}

func TestBuild_NoSelection(t *testing.T) {
	reg := NewRegistry("/opt/fif")
	spec := mustGet(t, reg, FindFiles)

	got, err := Build(spec, BuildInput{Locations: []string{"/cwd", "/home/user/my project"}})

	require.NoError(t, err)
	assert.Equal(t, "/opt/fif/find_files.sh '/cwd' '/home/user/my project'", got)
}

func TestBuild_Deterministic(t *testing.T) {
	spec := mustGet(t, NewRegistry("/opt/fif"), FindWithinFiles)
	in := BuildInput{Locations: []string{"/a", "/b c", "/d"}}

	first, err := Build(spec, in)
	require.NoError(t, err)
	second, err := Build(spec, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_SelectionWrittenToFileNotInline(t *testing.T) {
	dir := t.TempDir()
	selFile := filepath.Join(dir, "selection")
	spec := mustGet(t, NewRegistry("/opt/fif"), FindWithinFiles)
	selection := `it's "$(rm -rf ~)"; echo pwned`

	got, err := Build(spec, BuildInput{
		Locations:     []string{"/ws"},
		SelectionFile: selFile,
		Selection:     selection,
		UseSelection:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "HAS_SELECTION=1 /opt/fif/find_within_files.sh '/ws'", got)
	assert.NotContains(t, got, "rm -rf")
	assert.NotContains(t, got, "pwned")

	data, err := os.ReadFile(selFile)
	require.NoError(t, err)
	assert.Equal(t, selection, string(data))
}

func TestBuild_SelectionIgnoredWhenDisabledOrEmpty(t *testing.T) {
	dir := t.TempDir()
	selFile := filepath.Join(dir, "selection")
	spec := mustGet(t, NewRegistry("/opt/fif"), FindFiles)

	got, err := Build(spec, BuildInput{SelectionFile: selFile, Selection: "foo", UseSelection: false})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, "HAS_SELECTION"))

	got, err = Build(spec, BuildInput{SelectionFile: selFile, Selection: "", UseSelection: true})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, "HAS_SELECTION"))

	_, err = os.Stat(selFile)
	assert.True(t, os.IsNotExist(err), "selection file must not be written")
}

func TestBuild_FlightCheckTakesNoArgsOrSelection(t *testing.T) {
	spec := mustGet(t, NewRegistry("/opt/fif"), FlightCheck)

	got, err := Build(spec, BuildInput{
		Locations:     []string{"/ws"},
		SelectionFile: filepath.Join(t.TempDir(), "selection"),
		Selection:     "text",
		UseSelection:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "/opt/fif/flight_check.sh", got)
}

func TestBuild_QuotesEmbeddedSingleQuote(t *testing.T) {
	spec := mustGet(t, NewRegistry("/opt/fif"), FindFiles)

	got, err := Build(spec, BuildInput{Locations: []string{"/home/o'brien"}})

	require.NoError(t, err)
	assert.Equal(t, `/opt/fif/find_files.sh '/home/o'\''brien'`, got)
}

func TestBuild_QuotesExecutableWithSpaces(t *testing.T) {
	spec := mustGet(t, NewRegistry("/Applications/Find It/scripts"), FlightCheck)

	got, err := Build(spec, BuildInput{})

	require.NoError(t, err)
	assert.Equal(t, "'/Applications/Find It/scripts/flight_check.sh'", got)
}

func TestBuild_SelectionWriteFailure(t *testing.T) {
	spec := mustGet(t, NewRegistry("/opt/fif"), FindFiles)

	_, err := Build(spec, BuildInput{
		SelectionFile: filepath.Join(t.TempDir(), "missing", "selection"),
		Selection:     "x",
		UseSelection:  true,
	})

	var writeErr *SelectionWriteError
	require.True(t, errors.As(err, &writeErr))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry("/s")

	assert.Equal(t, []ID{FindFiles, FindWithinFiles, FlightCheck, ListSearchLocations}, reg.IDs())

	spec := mustGet(t, reg, ListSearchLocations)
	assert.NotNil(t, spec.PreRun)
	assert.True(t, spec.UsesWorkspaceArgs)
	assert.False(t, spec.SelectionAware)

	_, err := reg.Get("openSesame")
	var unknown *UnknownCommandError
	require.True(t, errors.As(err, &unknown))
}

func TestWriteExplainFile(t *testing.T) {
	locs := search.NewLocations()
	locs.Add("/cwd", search.OriginCwd)
	path := filepath.Join(t.TempDir(), "paths_explain")

	require.NoError(t, WriteExplainFile(HookInput{ExplainFile: path, Locations: locs}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- /cwd\n")
	assert.Contains(t, string(data), "- <none>\n")
}
