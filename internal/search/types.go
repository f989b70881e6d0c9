package search

import "fmt"

// Policy decides when a search source contributes locations.
type Policy string

const (
	PolicyAlways          Policy = "always"
	PolicyNever           Policy = "never"
	PolicyNoWorkspaceOnly Policy = "noWorkspaceOnly"
)

// ParsePolicy accepts the setting spelling as well as the hyphenated form.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case string(PolicyAlways):
		return PolicyAlways, nil
	case string(PolicyNever):
		return PolicyNever, nil
	case string(PolicyNoWorkspaceOnly), "only-if-no-workspace":
		return PolicyNoWorkspaceOnly, nil
	}
	return "", &UnknownPolicyError{Value: s}
}

// Includes reports whether a source governed by p is searched.
func (p Policy) Includes(workspacePresent bool) bool {
	switch p {
	case PolicyAlways:
		return true
	case PolicyNoWorkspaceOnly:
		return !workspacePresent
	default:
		return false
	}
}

// PathOrigin records why a path is searched. Bits accumulate.
type PathOrigin uint8

const (
	OriginCwd PathOrigin = 1 << iota
	OriginWorkspace
	OriginSettings
)

// Has reports whether all bits of o are set.
func (p PathOrigin) Has(o PathOrigin) bool { return p&o == o && o != 0 }

func (p PathOrigin) String() string {
	if p == 0 {
		return "none"
	}
	var s string
	for _, n := range []struct {
		bit  PathOrigin
		name string
	}{{OriginCwd, "cwd"}, {OriginWorkspace, "workspace"}, {OriginSettings, "settings"}} {
		if p.Has(n.bit) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// Location is a directory to search and the reasons it was included.
type Location struct {
	Path    string
	Origins PathOrigin
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%s)", l.Path, l.Origins)
}

// ResolveInput is everything the resolver needs. It is rebuilt on every trigger.
type ResolveInput struct {
	Cwd              string
	CwdPolicy        Policy
	Extra            []string
	ExtraPolicy      Policy
	WorkspaceFolders bool
	// WorkspaceRoots are URIs as reported by the host. Nil means no workspace is open.
	WorkspaceRoots []string
}
