package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the on-disk override directory. Files found here win over the
// embedded copies so tuning can be edited without rebuilding.
var Dir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// LoadScript reads a pattern-picker script, preferring the disk copy.
func LoadScript(name string) ([]byte, error) {
	return readTuning(ScriptsFS, cleanScriptPath(name))
}

// Load reads a tuning table, preferring the disk copy.
func Load(name string) ([]byte, error) {
	return readTuning(PrefabsFS, cleanPrefabPath(name))
}

// readTuning falls back to the embedded copy only when no disk override
// exists. An override that cannot be read is an error.
func readTuning(fsys embed.FS, clean string) ([]byte, error) {
	data, err := os.ReadFile(diskPrefabPath(clean))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return fsys.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
