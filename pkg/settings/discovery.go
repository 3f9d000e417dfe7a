package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nullrend/vsthost/internal/applog"
)

var log = applog.For("settings")

// ScanPlugins walks each directory in paths (non-recursively, matching
// a typical VST3 install layout) and returns every entry whose
// extension is .vst3. A directory that can't be read is skipped rather
// than failing the whole scan, since a stale or removed plugin-paths
// entry shouldn't block discovery of the others.
func ScanPlugins(paths []string) []string {
	var found []string
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warn("failed to read plugin directory", "dir", dir, "err", err)
			continue
		}
		for _, entry := range entries {
			if strings.EqualFold(filepath.Ext(entry.Name()), ".vst3") {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return found
}

// BrowseDirectory lists the immediate children of dir, for the
// browse_directory command surface (a directory picker the UI shell
// drives interactively rather than a recursive scan).
func BrowseDirectory(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}
