package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Includes(t *testing.T) {
	tests := []struct {
		policy           Policy
		workspacePresent bool
		want             bool
	}{
		{PolicyAlways, false, true},
		{PolicyAlways, true, true},
		{PolicyNever, false, false},
		{PolicyNever, true, false},
		{PolicyNoWorkspaceOnly, false, true},
		{PolicyNoWorkspaceOnly, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Includes(tt.workspacePresent))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("only-if-no-workspace")
	require.NoError(t, err)
	assert.Equal(t, PolicyNoWorkspaceOnly, p)

	p, err = ParsePolicy("always")
	require.NoError(t, err)
	assert.Equal(t, PolicyAlways, p)

	_, err = ParsePolicy("sometimes")
	var unknown *UnknownPolicyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "sometimes", unknown.Value)
}

func TestResolve_NoWorkspace_CwdOnly(t *testing.T) {
	locs, warnings := Resolve(ResolveInput{
		Cwd:              "/home/user/project",
		CwdPolicy:        PolicyNoWorkspaceOnly,
		Extra:            []string{"/opt/extra"},
		ExtraPolicy:      PolicyNever,
		WorkspaceFolders: true,
		WorkspaceRoots:   nil,
	})

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"/home/user/project"}, locs.Paths())
	assert.Equal(t, OriginCwd, locs.Origins("/home/user/project"))
}

func TestResolve_OrderIsCwdSettingsWorkspace(t *testing.T) {
	locs, warnings := Resolve(ResolveInput{
		Cwd:              "/cwd",
		CwdPolicy:        PolicyAlways,
		Extra:            []string{"/extra/a", "/extra/b"},
		ExtraPolicy:      PolicyAlways,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file:///ws/one", "file:///ws/two"},
	})

	require.Empty(t, warnings)
	assert.Equal(t, []string{"/cwd", "/extra/a", "/extra/b", "/ws/one", "/ws/two"}, locs.Paths())
}

func TestResolve_OriginsAccumulate(t *testing.T) {
	locs, _ := Resolve(ResolveInput{
		Cwd:              "/repo",
		CwdPolicy:        PolicyAlways,
		Extra:            []string{"/repo"},
		ExtraPolicy:      PolicyAlways,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file:///repo"},
	})

	require.Equal(t, 1, locs.Len())
	origins := locs.Origins("/repo")
	assert.True(t, origins.Has(OriginCwd))
	assert.True(t, origins.Has(OriginSettings))
	assert.True(t, origins.Has(OriginWorkspace))
	assert.Equal(t, "cwd|workspace|settings", origins.String())
}

func TestResolve_WorkspacePresentSuppressesNoWorkspaceOnlySources(t *testing.T) {
	locs, _ := Resolve(ResolveInput{
		Cwd:              "/cwd",
		CwdPolicy:        PolicyNoWorkspaceOnly,
		Extra:            []string{"/extra"},
		ExtraPolicy:      PolicyNoWorkspaceOnly,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file:///ws"},
	})

	assert.Equal(t, []string{"/ws"}, locs.Paths())
}

func TestResolve_WorkspaceFoldersDisabled(t *testing.T) {
	locs, _ := Resolve(ResolveInput{
		CwdPolicy:        PolicyNever,
		ExtraPolicy:      PolicyNever,
		WorkspaceFolders: false,
		WorkspaceRoots:   []string{"file:///ws"},
	})

	assert.Equal(t, 0, locs.Len())
}

func TestResolve_NonFileSchemeIsSkippedWithWarning(t *testing.T) {
	locs, warnings := Resolve(ResolveInput{
		CwdPolicy:        PolicyNever,
		ExtraPolicy:      PolicyNever,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"vscode-remote://ssh/home/x", "file:///local/root"},
	})

	require.Len(t, warnings, 1)
	var schemeErr *UnsupportedSchemeError
	require.True(t, errors.As(warnings[0], &schemeErr))
	assert.Equal(t, "vscode-remote", schemeErr.Scheme)
	assert.Equal(t, []string{"/local/root"}, locs.Paths())
}

func TestResolve_RemoteHostIsSkippedWithWarning(t *testing.T) {
	locs, warnings := Resolve(ResolveInput{
		CwdPolicy:        PolicyNever,
		ExtraPolicy:      PolicyNever,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file://server/share", "file://localhost/srv/local", "file:///plain"},
	})

	require.Len(t, warnings, 1)
	var hostErr *RemoteHostError
	require.True(t, errors.As(warnings[0], &hostErr))
	assert.Equal(t, "server", hostErr.Host)
	assert.Equal(t, []string{"/srv/local", "/plain"}, locs.Paths())
}

func TestResolve_DecodesPercentEscapes(t *testing.T) {
	locs, warnings := Resolve(ResolveInput{
		CwdPolicy:        PolicyNever,
		ExtraPolicy:      PolicyNever,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file:///home/user/my%20project"},
	})

	require.Empty(t, warnings)
	assert.Equal(t, []string{"/home/user/my project"}, locs.Paths())
}

func TestResolve_Idempotent(t *testing.T) {
	in := ResolveInput{
		Cwd:              "/cwd",
		CwdPolicy:        PolicyAlways,
		Extra:            []string{"/b", "/a", "/cwd"},
		ExtraPolicy:      PolicyAlways,
		WorkspaceFolders: true,
		WorkspaceRoots:   []string{"file:///z", "file:///a"},
	}

	first, _ := Resolve(in)
	second, _ := Resolve(in)

	assert.Equal(t, first.All(), second.All())
}

func TestLocations_Explain(t *testing.T) {
	locs := NewLocations()
	locs.Add("/cwd", OriginCwd)
	locs.Add("/shared", OriginCwd)
	locs.Add("/shared", OriginWorkspace)

	out := locs.Explain(false)

	assert.Equal(t, strings.Join([]string{
		"Paths added because they're the working directory:",
		"- /cwd",
		"- /shared",
		"Paths added because they're defined in the workspace:",
		"- /shared",
		"Paths added because they're specified in the settings:",
		"- <none>",
		"",
	}, "\n"), out)
}

func TestLocations_ExplainColored(t *testing.T) {
	locs := NewLocations()
	locs.Add("/cwd", OriginCwd)

	out := locs.Explain(true)

	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "- /cwd\n")
}
