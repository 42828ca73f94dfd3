package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestScanResources(t *testing.T) {
	t.Run("classifies by directory convention", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "SKILL.md")
		writeFile(t, root, "scripts/b.py")
		writeFile(t, root, "scripts/a.py")
		writeFile(t, root, "scripts/nested/c.py")
		writeFile(t, root, "references/guide.md")
		writeFile(t, root, "assets/logo.png")
		writeFile(t, root, "README.md")
		writeFile(t, root, "extras/notes.txt")

		manifest, err := ScanResources(root)
		require.NoError(t, err)

		assert.Equal(t, []string{"scripts/a.py", "scripts/b.py", "scripts/nested/c.py"}, manifest.Scripts)
		assert.Equal(t, []string{"references/guide.md"}, manifest.References)
		assert.Equal(t, []string{"assets/logo.png"}, manifest.Assets)
		assert.Equal(t, []string{"README.md", "extras/notes.txt"}, manifest.Unrecognized)
	})

	t.Run("definition file is not a resource", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "SKILL.md")

		manifest, err := ScanResources(root)
		require.NoError(t, err)
		assert.Empty(t, manifest.Scripts)
		assert.Empty(t, manifest.Unrecognized)
	})

	t.Run("skips hidden entries and python artifacts", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "SKILL.md")
		writeFile(t, root, ".git/config")
		writeFile(t, root, ".DS_Store")
		writeFile(t, root, "scripts/__pycache__/a.cpython-311.pyc")
		writeFile(t, root, "scripts/run.pyc")
		writeFile(t, root, "scripts/run.py")

		manifest, err := ScanResources(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"scripts/run.py"}, manifest.Scripts)
		assert.Empty(t, manifest.Unrecognized)
	})

	t.Run("all returns bucket priority order", func(t *testing.T) {
		manifest := &ResourceManifest{
			Scripts:    []string{"scripts/a.py"},
			References: []string{"references/r.md"},
			Assets:     []string{"assets/x.bin"},
		}
		assert.Equal(t, []string{"scripts/a.py", "references/r.md", "assets/x.bin"}, manifest.All())
	})
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	assert.False(t, Exists(root))

	writeFile(t, root, "SKILL.md")
	assert.True(t, Exists(root))
}
