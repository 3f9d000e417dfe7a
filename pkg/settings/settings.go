// Package settings reads and writes the host's JSON settings bag: the
// selected audio backend/devices/buffer size and the list of
// directories scanned for plugins.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AudioSettings is the "audio-settings" object in the settings bag.
type AudioSettings struct {
	Host       string `json:"host"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	BufferSize uint32 `json:"buffer_size"`
}

// Bag is the full settings-bag JSON document.
type Bag struct {
	AudioSettings AudioSettings `json:"audio-settings"`
	PluginPaths   []string      `json:"plugin-paths"`
}

// Load reads and parses the settings bag at path. A missing file is not
// an error: it returns a Bag with default plugin paths and a zero-value
// AudioSettings, matching first-run behavior.
func Load(path string) (Bag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bag{PluginPaths: DefaultPluginPaths()}, nil
		}
		return Bag{}, err
	}

	var bag Bag
	if err := json.Unmarshal(data, &bag); err != nil {
		return Bag{}, err
	}
	if len(bag.PluginPaths) == 0 {
		bag.PluginPaths = DefaultPluginPaths()
	} else {
		for i, p := range bag.PluginPaths {
			bag.PluginPaths[i] = CleanPath(p)
		}
	}
	return bag, nil
}

// Save writes the bag to path as indented JSON, creating parent
// directories as needed.
func Save(path string, bag Bag) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(bag, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CleanPath strips a Windows extended-length ("\\?\") prefix from a
// canonicalized path. It is a no-op on paths that never had one, so it
// is safe to apply unconditionally on every platform.
func CleanPath(path string) string {
	const uncPrefix = `\\?\`
	return strings.TrimPrefix(path, uncPrefix)
}

// DefaultPluginPaths returns the platform's conventional VST3 install
// locations, used the first time a host runs with no configured
// plugin-paths entry.
func DefaultPluginPaths() []string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		paths := []string{
			`C:\Program Files\Common Files\VST3`,
			`C:\Program Files (x86)\Common Files\VST3`,
		}
		if appData != "" {
			paths = append(paths, filepath.Join(appData, "Programs", "Common", "VST3"))
		}
		return paths
	case "darwin":
		home, _ := os.UserHomeDir()
		paths := []string{"/Library/Audio/Plug-Ins/VST3"}
		if home != "" {
			paths = append(paths, filepath.Join(home, "Library", "Audio", "Plug-Ins", "VST3"))
		}
		return paths
	default:
		home, _ := os.UserHomeDir()
		paths := []string{"/usr/lib/vst3", "/usr/local/lib/vst3"}
		if home != "" {
			paths = append(paths, filepath.Join(home, ".vst3"))
		}
		return paths
	}
}
