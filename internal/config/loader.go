package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "finditfaster"
	// ConfigFile is the JSON config file name
	ConfigFile = "config.json"
	// ConfigFileTOML is tried when ConfigFile does not exist
	ConfigFileTOML = "config.toml"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs   FileSystem
	path string
}

// NewLoader creates a production Loader using the real filesystem.
// An empty path means the default location under ~/.config.
func NewLoader(path string) *Loader {
	return &Loader{fs: ConfigFileReader{}, path: path}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem, path string) *Loader {
	return &Loader{fs: fs, path: path}
}

// Candidates returns the files Load considers, in order.
func (l *Loader) Candidates() []string {
	if l.path != "" {
		return []string{l.path}
	}
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(homeDir, ".config", ConfigDir)
	return []string{filepath.Join(dir, ConfigFile), filepath.Join(dir, ConfigFileTOML)}
}

// LoadSettings reads the first existing candidate file and merges it over
// DefaultSettings. Present keys overwrite defaults, including zero values and
// null; missing keys keep their defaults.
// Returns defaults if no file exists or the home dir is unknown.
func (l *Loader) LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	for _, path := range l.Candidates() {
		data, err := l.fs.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err // permission issues and the like
		}

		raw := map[string]any{}
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			if _, err := toml.Decode(string(data), &raw); err != nil {
				return nil, &ParseError{Path: path, Cause: err}
			}
		} else {
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, &ParseError{Path: path, Cause: err}
			}
		}

		for k, v := range Flatten(raw) {
			settings[k] = v
		}
		break
	}

	return settings, nil
}

// Load reads settings and resolves them into a validated Config.
func (l *Loader) Load() (*Config, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}
	return Resolve(settings)
}

// Flatten turns {"general": {"shell": "zsh"}} into {"general.shell": "zsh"}.
// Only one level is flattened so map-valued settings such as search.exclude
// keep their keys intact. Keys that already contain a dot are taken as is.
func Flatten(raw map[string]any) Settings {
	out := Settings{}
	for k, v := range raw {
		section, ok := v.(map[string]any)
		if !ok || strings.Contains(k, ".") {
			out[k] = v
			continue
		}
		for kk, vv := range section {
			out[k+"."+kk] = vv
		}
	}
	return out
}

// Describe renders settings as sorted "key = value" lines.
func Describe(settings Settings) string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s = %v\n", k, settings[k])
	}
	return sb.String()
}
