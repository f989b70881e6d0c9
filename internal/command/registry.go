// Package command holds the static command table and builds the shell
// invocation sent to the session for each command.
package command

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Cyclone1070/finditfaster/internal/search"
)

// ID names a command.
type ID string

const (
	FindFiles           ID = "findFiles"
	FindWithinFiles     ID = "findWithinFiles"
	ListSearchLocations ID = "listSearchLocations"
	FlightCheck         ID = "flightCheck"
)

// HookInput is what a pre-run hook may look at.
type HookInput struct {
	ExplainFile string
	Locations   *search.Locations
}

// Hook runs right before a command's invocation is sent to the session.
type Hook func(HookInput) error

// Spec describes one command.
type Spec struct {
	ID                ID
	Script            string
	ExecutablePath    string
	UsesWorkspaceArgs bool
	SelectionAware    bool
	PreRun            Hook
}

// Registry is the command table. It is built once and never modified.
type Registry struct {
	specs map[ID]Spec
}

// NewRegistry resolves every script against scriptDir.
func NewRegistry(scriptDir string) *Registry {
	specs := []Spec{
		{ID: FindFiles, Script: "find_files.sh", UsesWorkspaceArgs: true, SelectionAware: true},
		{ID: FindWithinFiles, Script: "find_within_files.sh", UsesWorkspaceArgs: true, SelectionAware: true},
		{ID: ListSearchLocations, Script: "list_search_locations.sh", UsesWorkspaceArgs: true, PreRun: WriteExplainFile},
		{ID: FlightCheck, Script: "flight_check.sh"},
	}

	r := &Registry{specs: make(map[ID]Spec, len(specs))}
	for _, s := range specs {
		s.ExecutablePath = filepath.Join(scriptDir, s.Script)
		r.specs[s.ID] = s
	}
	return r
}

// Get returns the spec for id.
func (r *Registry) Get(id ID) (Spec, error) {
	s, ok := r.specs[id]
	if !ok {
		return Spec{}, &UnknownCommandError{ID: string(id)}
	}
	return s, nil
}

// IDs returns every registered command id in sorted order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WriteExplainFile regenerates the colored search-location report.
func WriteExplainFile(in HookInput) error {
	if in.ExplainFile == "" {
		return fmt.Errorf("explain file path is not set")
	}
	if err := os.WriteFile(in.ExplainFile, []byte(in.Locations.Explain(true)), 0o600); err != nil {
		return fmt.Errorf("failed to write explain file: %w", err)
	}
	return nil
}
