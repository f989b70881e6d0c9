package search

import (
	"net/url"
	"strings"
)

// Locations is an insertion-ordered set of search locations keyed by path.
type Locations struct {
	order []string
	index map[string]*Location
}

// NewLocations returns an empty set.
func NewLocations() *Locations {
	return &Locations{index: make(map[string]*Location)}
}

// Add inserts path or ORs origin into an existing entry.
func (l *Locations) Add(path string, origin PathOrigin) {
	if existing, ok := l.index[path]; ok {
		existing.Origins |= origin
		return
	}
	l.index[path] = &Location{Path: path, Origins: origin}
	l.order = append(l.order, path)
}

// Len returns the number of distinct paths.
func (l *Locations) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// Paths returns the paths in insertion order.
func (l *Locations) Paths() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// All returns a copy of every location in insertion order.
func (l *Locations) All() []Location {
	if l == nil {
		return nil
	}
	out := make([]Location, 0, len(l.order))
	for _, p := range l.order {
		out = append(out, *l.index[p])
	}
	return out
}

// Origins returns the accumulated origin bits of path, or 0 if absent.
func (l *Locations) Origins(path string) PathOrigin {
	if l == nil {
		return 0
	}
	if loc, ok := l.index[path]; ok {
		return loc.Origins
	}
	return 0
}

// Resolve computes the ordered search locations: cwd first, then configured
// extra locations, then workspace roots. Unsupported workspace roots are
// skipped and reported in the returned warnings.
func Resolve(in ResolveInput) (*Locations, []error) {
	locs := NewLocations()
	workspacePresent := len(in.WorkspaceRoots) > 0

	if in.CwdPolicy.Includes(workspacePresent) && in.Cwd != "" {
		locs.Add(in.Cwd, OriginCwd)
	}

	if in.ExtraPolicy.Includes(workspacePresent) {
		for _, p := range in.Extra {
			if p == "" {
				continue
			}
			locs.Add(p, OriginSettings)
		}
	}

	var warnings []error
	if in.WorkspaceFolders {
		for _, uri := range in.WorkspaceRoots {
			p, err := FilePathFromURI(uri)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			locs.Add(p, OriginWorkspace)
		}
	}

	return locs, warnings
}

// FilePathFromURI converts a file:// URI to a local path.
func FilePathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", &UnsupportedSchemeError{URI: uri, Scheme: schemeOf(uri)}
	}
	if u.Scheme != "file" {
		return "", &UnsupportedSchemeError{URI: uri, Scheme: u.Scheme}
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", &RemoteHostError{URI: uri, Host: u.Host}
	}
	if u.Path == "" {
		return "", &UnsupportedSchemeError{URI: uri, Scheme: u.Scheme}
	}
	return u.Path, nil
}

func schemeOf(uri string) string {
	if i := strings.Index(uri, ":"); i > 0 {
		return uri[:i]
	}
	return ""
}
