package command

import (
	"os"
	"strings"
)

// BuildInput carries the per-invocation state the builder needs.
type BuildInput struct {
	Locations     []string
	SelectionFile string
	Selection     string
	UseSelection  bool
}

// selectionFlag tells the scripts to read their initial query from SELECTION_FILE.
const selectionFlag = "HAS_SELECTION=1 "

// Build returns the line typed into the session shell for spec.
//
// A selection is written to the selection file and only signalled through
// HAS_SELECTION=1; the selected text itself never becomes part of the line,
// since it can hold arbitrary shell syntax.
func Build(spec Spec, in BuildInput) (string, error) {
	var sb strings.Builder

	if spec.SelectionAware && in.UseSelection && in.Selection != "" {
		if err := os.WriteFile(in.SelectionFile, []byte(in.Selection), 0o600); err != nil {
			return "", &SelectionWriteError{Path: in.SelectionFile, Cause: err}
		}
		sb.WriteString(selectionFlag)
	}

	sb.WriteString(quoteIfNeeded(spec.ExecutablePath))

	if spec.UsesWorkspaceArgs {
		for _, loc := range in.Locations {
			sb.WriteString(" ")
			sb.WriteString(Quote(loc))
		}
	}
	return sb.String(), nil
}

// Quote wraps s in single quotes for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n'\"\\$`!*?[](){};&|<>#~") {
		return Quote(s)
	}
	return s
}
