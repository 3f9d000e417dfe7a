package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanPathStripsUNCPrefix(t *testing.T) {
	got := CleanPath(`\\?\C:\Program Files\Common Files\VST3`)
	want := `C:\Program Files\Common Files\VST3`
	if got != want {
		t.Errorf("CleanPath() = %q, want %q", got, want)
	}
}

func TestCleanPathNoOpWithoutPrefix(t *testing.T) {
	got := CleanPath("/usr/lib/vst3")
	if got != "/usr/lib/vst3" {
		t.Errorf("CleanPath() = %q, want unchanged", got)
	}
}

func TestDefaultPluginPathsNonEmpty(t *testing.T) {
	paths := DefaultPluginPaths()
	if len(paths) == 0 {
		t.Fatal("DefaultPluginPaths() returned no paths")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	bag, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(bag.PluginPaths) == 0 {
		t.Fatal("expected default plugin paths for missing settings file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Bag{
		AudioSettings: AudioSettings{Host: "wasapi", Input: "Mic", Output: "Speakers", BufferSize: 512},
		PluginPaths:   []string{"/usr/lib/vst3"},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.AudioSettings != want.AudioSettings {
		t.Errorf("AudioSettings = %+v, want %+v", got.AudioSettings, want.AudioSettings)
	}
	if len(got.PluginPaths) != 1 || got.PluginPaths[0] != want.PluginPaths[0] {
		t.Errorf("PluginPaths = %v, want %v", got.PluginPaths, want.PluginPaths)
	}
}

func TestScanPluginsFindsVST3Extension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gain.vst3", "notes.txt", "Reverb.VST3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	found := ScanPlugins([]string{dir})
	if len(found) != 2 {
		t.Fatalf("ScanPlugins() found %d entries, want 2: %v", len(found), found)
	}
}

func TestScanPluginsSkipsUnreadableDirectory(t *testing.T) {
	found := ScanPlugins([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	if found != nil {
		t.Fatalf("ScanPlugins() = %v, want nil", found)
	}
}
