package config

// Settings is the flat, dotted-key view of the user's configuration, e.g.
// "general.hideTerminalAfterSuccess". It mirrors how an editor exposes its
// configuration store. Values are whatever the file format decoded.
type Settings map[string]any

// Setting keys.
const (
	KeyDisableStartupChecks          = "advanced.disableStartupChecks"
	KeyUseEditorSelectionAsQuery     = "advanced.useEditorSelectionAsQuery"
	KeyUseWorkspaceSearchExcludes    = "general.useWorkspaceSearchExcludes"
	KeyAdditionalSearchLocations     = "general.additionalSearchLocations"
	KeyAdditionalSearchLocationsWhen = "general.additionalSearchLocationsWhen"
	KeySearchCurrentWorkingDirectory = "general.searchCurrentWorkingDirectory"
	KeySearchWorkspaceFolders        = "general.searchWorkspaceFolders"
	KeyHideTerminalAfterSuccess      = "general.hideTerminalAfterSuccess"
	KeyHideTerminalAfterFail         = "general.hideTerminalAfterFail"
	KeyClearTerminalAfterUse         = "general.clearTerminalAfterUse"
	KeyShowMaximizedTerminal         = "general.showMaximizedTerminal"
	KeyScriptDir                     = "general.scriptDir"
	KeyShell                         = "general.shell"
	KeySessionEnvFile                = "general.sessionEnvFile"
	KeyCanaryDebounceMs              = "general.canaryDebounceMs"
	KeyFindFilesPreviewEnabled       = "findFiles.showPreview"
	KeyFindFilesPreviewCommand       = "findFiles.previewCommand"
	KeyFindFilesPreviewWindow        = "findFiles.previewWindowConfig"
	KeyFindWithinPreviewEnabled      = "findWithinFiles.showPreview"
	KeyFindWithinPreviewCommand      = "findWithinFiles.previewCommand"
	KeyFindWithinPreviewWindow       = "findWithinFiles.previewWindowConfig"
	KeySearchExclude                 = "search.exclude"
	KeyEditorOpenCommand             = "editor.openCommand"
	KeyMaxCommandOutputSize          = "tools.maxCommandOutputSize"
	KeyFlightCheckTimeoutMs          = "tools.flightCheckTimeoutMs"
	KeyGracefulShutdownMs            = "tools.gracefulShutdownMs"
)

// DefaultSettings returns a fresh copy of every setting with its default.
// Every key present here is required after merging.
func DefaultSettings() Settings {
	return Settings{
		KeyDisableStartupChecks:          false,
		KeyUseEditorSelectionAsQuery:     true,
		KeyUseWorkspaceSearchExcludes:    true,
		KeyAdditionalSearchLocations:     []string{},
		KeyAdditionalSearchLocationsWhen: "always",
		KeySearchCurrentWorkingDirectory: "noWorkspaceOnly",
		KeySearchWorkspaceFolders:        true,
		KeyHideTerminalAfterSuccess:      true,
		KeyHideTerminalAfterFail:         true,
		KeyClearTerminalAfterUse:         true,
		KeyShowMaximizedTerminal:         false,
		KeyScriptDir:                     "",
		KeyShell:                         "bash",
		KeySessionEnvFile:                "",
		KeyCanaryDebounceMs:              50,
		KeyFindFilesPreviewEnabled:       true,
		KeyFindFilesPreviewCommand:       "bat --decorations=always --color=always --plain {}",
		KeyFindFilesPreviewWindow:        "right:50%:border-left",
		KeyFindWithinPreviewEnabled:      true,
		KeyFindWithinPreviewCommand:      "bat --decorations=always --color=always --plain {1} --highlight-line {2}",
		KeyFindWithinPreviewWindow:       "right:50%:border-left:+{2}+3/3:~3",
		KeySearchExclude: map[string]any{
			"**/node_modules":     true,
			"**/bower_components": true,
			"**/*.code-search":    true,
		},
		KeyEditorOpenCommand:    []string{},
		KeyMaxCommandOutputSize: 1024 * 1024,
		KeyFlightCheckTimeoutMs: 10000,
		KeyGracefulShutdownMs:   2000,
	}
}
