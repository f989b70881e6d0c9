package session

import (
	"testing"

	"github.com/Cyclone1070/finditfaster/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEnv_Vars_Contract(t *testing.T) {
	cfg := config.DefaultConfig()
	env := EnvFromConfig(cfg, nil, "/work")
	files := newFiles("/tmp/finditfaster-x")

	vars := env.Vars(files)

	assert.Contains(t, vars, "HISTCONTROL=ignoreboth")
	assert.Contains(t, vars, "FIND_FILES_PREVIEW_ENABLED=1")
	assert.Contains(t, vars, "FIND_FILES_PREVIEW_COMMAND="+cfg.FindFilesPreviewCommand)
	assert.Contains(t, vars, "FIND_WITHIN_FILES_PREVIEW_WINDOW_CONFIG="+cfg.FindWithinFilesPreviewWindowConfig)
	assert.Contains(t, vars, "GLOBS=!**/*.code-search:!**/bower_components:!**/node_modules:")
	assert.Contains(t, vars, "CANARY_FILE=/tmp/finditfaster-x/snitch")
	assert.Contains(t, vars, "SELECTION_FILE=/tmp/finditfaster-x/selection")
	assert.Contains(t, vars, "EXPLAIN_FILE=/tmp/finditfaster-x/paths_explain")
	assert.Equal(t, "bash", env.Shell)
	assert.Equal(t, "/work", env.WorkDir)
}

func TestEnv_Vars_PreviewDisabledAndNoExcludes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FindWithinFilesPreviewEnabled = false
	cfg.UseWorkspaceSearchExcludes = false

	vars := EnvFromConfig(cfg, nil, "").Vars(newFiles("/d"))

	assert.Contains(t, vars, "FIND_WITHIN_FILES_PREVIEW_ENABLED=0")
	assert.Contains(t, vars, "GLOBS=")
}

func TestEnv_Vars_ExtraComesFirst(t *testing.T) {
	env := EnvFromConfig(config.DefaultConfig(), map[string]string{"Z_VAR": "z", "GLOBS": "ignored", "A_VAR": "a"}, "")

	vars := env.Vars(newFiles("/d"))

	assert.Equal(t, []string{"A_VAR=a", "GLOBS=ignored", "Z_VAR=z"}, vars[:3])
	// The contract GLOBS comes later and wins in exec's dedup.
	var last string
	for _, v := range vars {
		if len(v) > 6 && v[:6] == "GLOBS=" {
			last = v
		}
	}
	assert.NotEqual(t, "GLOBS=ignored", last)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"empty", "", false},
		{"failure marker", "1", false},
		{"failure marker with newline", "1\n", false},
		{"single path", "src/a.go\n", true},
		{"path with location", "a.go:3:4\n", true},
		{"path starting with 1", "1.go:1:1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify([]byte(tt.payload)))
		})
	}
}
