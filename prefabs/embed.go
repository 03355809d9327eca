package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk directory checked before the embedded copies. Files
// found there win, which is what makes hot reload work in development.
var Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Asset is the kind of file an actor is built from.
type Asset int

const (
	AssetNone Asset = iota
	AssetActor
	AssetScript
)

func (a Asset) String() string {
	switch a {
	case AssetActor:
		return "actor"
	case AssetScript:
		return "script"
	default:
		return "none"
	}
}

// Classify tells which asset p holds and the name it is loaded by. Paths
// may be absolute, relative to Dir, or prefixed with "prefabs/".
func Classify(p string) (Asset, string) {
	base := path.Base(filepath.ToSlash(p))
	switch {
	case base == ActorFile:
		return AssetActor, base
	case strings.EqualFold(path.Ext(base), ".tengo"):
		return AssetScript, base
	}
	return AssetNone, ""
}

// Load returns a data file such as actor.yaml.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, strings.TrimPrefix(filepath.ToSlash(name), "prefabs/"))
}

// LoadScript returns a skill script by name.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

func read(embedded embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

// cleanScriptPath maps "whirl.tengo", "scripts/whirl.tengo" and
// "prefabs/scripts/whirl.tengo" to the same embedded path.
func cleanScriptPath(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	return "scripts/" + strings.TrimPrefix(s, "scripts/")
}
