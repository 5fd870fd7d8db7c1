package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var prefabsFS embed.FS

// overrideDir, when set, is checked before the embedded copies so tuning
// can be edited on disk and hot-reloaded while the sandbox runs.
var overrideDir string

// SetOverrideDir points Load at an on-disk prefab directory.
func SetOverrideDir(dir string) {
	overrideDir = dir
}

// Load reads a prefab file, preferring the override directory over the
// embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if overrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(overrideDir, clean)); err == nil {
			return data, nil
		}
	}
	return prefabsFS.ReadFile(clean)
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		s = s[idx+1:]
	}
	return s
}
