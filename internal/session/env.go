package session

import (
	"sort"
	"time"

	"github.com/Cyclone1070/finditfaster/internal/config"
)

// Env describes what a session is launched with: the contract variables the
// scripts read, plus the shell and timing knobs taken from the same config
// snapshot.
type Env struct {
	FindFilesPreviewEnabled      bool
	FindFilesPreviewCommand      string
	FindFilesPreviewWindowConfig string

	FindWithinFilesPreviewEnabled      bool
	FindWithinFilesPreviewCommand      string
	FindWithinFilesPreviewWindowConfig string

	Globs string

	// Extra variables, e.g. from a dotenv file. Contract variables win on
	// conflict.
	Extra map[string]string

	Shell    string
	WorkDir  string
	Debounce time.Duration
}

// EnvFromConfig builds the launch description for cfg.
func EnvFromConfig(cfg *config.Config, extra map[string]string, workDir string) Env {
	return Env{
		FindFilesPreviewEnabled:            cfg.FindFilesPreviewEnabled,
		FindFilesPreviewCommand:            cfg.FindFilesPreviewCommand,
		FindFilesPreviewWindowConfig:       cfg.FindFilesPreviewWindowConfig,
		FindWithinFilesPreviewEnabled:      cfg.FindWithinFilesPreviewEnabled,
		FindWithinFilesPreviewCommand:      cfg.FindWithinFilesPreviewCommand,
		FindWithinFilesPreviewWindowConfig: cfg.FindWithinFilesPreviewWindowConfig,
		Globs:                              cfg.Globs(),
		Extra:                              extra,
		Shell:                              cfg.Shell,
		WorkDir:                            workDir,
		Debounce:                           cfg.CanaryDebounce(),
	}
}

// Vars renders the variables for a session whose files are f, as KEY=VALUE
// pairs. Extra variables come first, sorted, so the contract variables
// override them when the list is appended to os.Environ().
func (e Env) Vars(f Files) []string {
	keys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]string, 0, len(keys)+11)
	for _, k := range keys {
		vars = append(vars, k+"="+e.Extra[k])
	}
	return append(vars,
		"HISTCONTROL=ignoreboth",
		"FIND_FILES_PREVIEW_ENABLED="+flag(e.FindFilesPreviewEnabled),
		"FIND_FILES_PREVIEW_COMMAND="+e.FindFilesPreviewCommand,
		"FIND_FILES_PREVIEW_WINDOW_CONFIG="+e.FindFilesPreviewWindowConfig,
		"FIND_WITHIN_FILES_PREVIEW_ENABLED="+flag(e.FindWithinFilesPreviewEnabled),
		"FIND_WITHIN_FILES_PREVIEW_COMMAND="+e.FindWithinFilesPreviewCommand,
		"FIND_WITHIN_FILES_PREVIEW_WINDOW_CONFIG="+e.FindWithinFilesPreviewWindowConfig,
		"GLOBS="+e.Globs,
		"CANARY_FILE="+f.Canary,
		"SELECTION_FILE="+f.Selection,
		"EXPLAIN_FILE="+f.Explain,
	)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
