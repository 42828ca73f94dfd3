package skill

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Resource directory conventions, in priority order. A bundled file is
// classified by its first path segment; anything outside these directories
// (other than the definition file itself) is reported as unrecognized.
const (
	ScriptsDir    = "scripts"
	ReferencesDir = "references"
	AssetsDir     = "assets"
)

// ResourceManifest is a derived, read-only view of a skill directory's
// bundled files. Paths are slash-separated, relative to the skill root, and
// sorted lexicographically. The manifest reflects the directory at scan time
// only; no staleness guarantee is offered between runs.
type ResourceManifest struct {
	Scripts      []string // files under scripts/
	References   []string // files under references/
	Assets       []string // files under assets/
	Unrecognized []string // files outside the resource conventions
}

// ScanResources walks a skill directory and classifies every regular file by
// the resource-directory conventions. Hidden entries and python build
// artifacts are skipped, matching what the packager excludes.
func ScanResources(root string) (*ResourceManifest, error) {
	manifest := &ResourceManifest{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(name, ".pyc") || strings.HasSuffix(name, ".pyo") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel == DefinitionFileName {
			return nil
		}

		switch firstSegment(rel) {
		case ScriptsDir:
			manifest.Scripts = append(manifest.Scripts, rel)
		case ReferencesDir:
			manifest.References = append(manifest.References, rel)
		case AssetsDir:
			manifest.Assets = append(manifest.Assets, rel)
		default:
			manifest.Unrecognized = append(manifest.Unrecognized, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan skill resources")
	}

	sort.Strings(manifest.Scripts)
	sort.Strings(manifest.References)
	sort.Strings(manifest.Assets)
	sort.Strings(manifest.Unrecognized)

	return manifest, nil
}

// All returns every classified resource path in bucket priority order.
func (m *ResourceManifest) All() []string {
	all := make([]string, 0, len(m.Scripts)+len(m.References)+len(m.Assets))
	all = append(all, m.Scripts...)
	all = append(all, m.References...)
	all = append(all, m.Assets...)
	return all
}

func firstSegment(rel string) string {
	if idx := strings.Index(rel, "/"); idx != -1 {
		return rel[:idx]
	}
	return rel
}

// Exists reports whether a skill directory contains a definition file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, DefinitionFileName))
	return err == nil && !info.IsDir()
}
