package config

import (
	"time"

	"github.com/Cyclone1070/finditfaster/internal/search"
	"github.com/mitchellh/mapstructure"
)

// Config is the resolved, typed snapshot of Settings. It is rebuilt whole on
// every configuration change and never mutated afterwards.
type Config struct {
	DisableStartupChecks       bool     `setting:"advanced.disableStartupChecks"`
	UseEditorSelectionAsQuery  bool     `setting:"advanced.useEditorSelectionAsQuery"`
	UseWorkspaceSearchExcludes bool     `setting:"general.useWorkspaceSearchExcludes"`
	AdditionalSearchLocations  []string `setting:"general.additionalSearchLocations"`

	AdditionalSearchLocationsWhen search.Policy `setting:"general.additionalSearchLocationsWhen"`
	SearchCurrentWorkingDirectory search.Policy `setting:"general.searchCurrentWorkingDirectory"`
	SearchWorkspaceFolders        bool          `setting:"general.searchWorkspaceFolders"`

	HideTerminalAfterSuccess bool `setting:"general.hideTerminalAfterSuccess"`
	HideTerminalAfterFail    bool `setting:"general.hideTerminalAfterFail"`
	ClearTerminalAfterUse    bool `setting:"general.clearTerminalAfterUse"`
	ShowMaximizedTerminal    bool `setting:"general.showMaximizedTerminal"`

	ScriptDir        string `setting:"general.scriptDir"`
	Shell            string `setting:"general.shell"`
	SessionEnvFile   string `setting:"general.sessionEnvFile"`
	CanaryDebounceMs int    `setting:"general.canaryDebounceMs"`

	FindFilesPreviewEnabled      bool   `setting:"findFiles.showPreview"`
	FindFilesPreviewCommand      string `setting:"findFiles.previewCommand"`
	FindFilesPreviewWindowConfig string `setting:"findFiles.previewWindowConfig"`

	FindWithinFilesPreviewEnabled      bool   `setting:"findWithinFiles.showPreview"`
	FindWithinFilesPreviewCommand      string `setting:"findWithinFiles.previewCommand"`
	FindWithinFilesPreviewWindowConfig string `setting:"findWithinFiles.previewWindowConfig"`

	SearchExclude map[string]any `setting:"search.exclude"`

	EditorOpenCommand    []string `setting:"editor.openCommand"`
	MaxCommandOutputSize int64    `setting:"tools.maxCommandOutputSize"`
	FlightCheckTimeoutMs int      `setting:"tools.flightCheckTimeoutMs"`
	GracefulShutdownMs   int      `setting:"tools.gracefulShutdownMs"`
}

// Resolve builds a Config from settings. A key that is missing or set to null
// is a ConfigurationError; nothing is silently defaulted here, defaults are
// merged in by the Loader beforehand.
func Resolve(settings Settings) (*Config, error) {
	for key := range DefaultSettings() {
		v, ok := settings[key]
		if !ok || v == nil {
			return nil, &ConfigurationError{Key: key}
		}
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "setting",
		Result:  cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(settings)); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if p, err := search.ParsePolicy(string(cfg.AdditionalSearchLocationsWhen)); err == nil {
		cfg.AdditionalSearchLocationsWhen = p
	}
	if p, err := search.ParsePolicy(string(cfg.SearchCurrentWorkingDirectory)); err == nil {
		cfg.SearchCurrentWorkingDirectory = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the Config resolved from DefaultSettings.
func DefaultConfig() *Config {
	cfg, err := Resolve(DefaultSettings())
	if err != nil {
		panic("default settings do not resolve: " + err.Error())
	}
	return cfg
}

// CanaryDebounce is the window in which canary writes are coalesced.
func (c *Config) CanaryDebounce() time.Duration {
	return time.Duration(c.CanaryDebounceMs) * time.Millisecond
}

// FlightCheckTimeout bounds the preflight script.
func (c *Config) FlightCheckTimeout() time.Duration {
	return time.Duration(c.FlightCheckTimeoutMs) * time.Millisecond
}

// GracefulShutdown is how long a timed-out command gets after SIGINT.
func (c *Config) GracefulShutdown() time.Duration {
	return time.Duration(c.GracefulShutdownMs) * time.Millisecond
}

// Globs is the ignore-glob string for the session, empty when workspace
// excludes are disabled.
func (c *Config) Globs() string {
	if !c.UseWorkspaceSearchExcludes {
		return ""
	}
	return search.TranslateExcludes(c.SearchExclude)
}
