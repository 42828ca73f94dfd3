package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/pkg/skill"
)

func TestLintContent(t *testing.T) {
	t.Run("clean content has no findings", func(t *testing.T) {
		issues, suggestions := lintContent("# My Skill\n\nExtract text from PDFs.\n", t.TempDir())
		assert.Empty(t, issues)
		assert.Empty(t, suggestions)
	})

	t.Run("todo markers are issues", func(t *testing.T) {
		issues, _ := lintContent("TODO: one\n\nTODO: two\n", t.TempDir())
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "2 TODO placeholder(s)")
	})

	t.Run("non-imperative voice is a suggestion", func(t *testing.T) {
		content := "You should run the script.\nYou can also skip it.\n"
		_, suggestions := lintContent(content, t.TempDir())
		require.Len(t, suggestions, 1)
		assert.Contains(t, suggestions[0], "imperative voice")
		assert.Contains(t, suggestions[0], "You should run the script.")
	})

	t.Run("non-imperative sample is capped at three lines", func(t *testing.T) {
		content := strings.Repeat("You must do this.\n", 5)
		_, suggestions := lintContent(content, t.TempDir())
		require.Len(t, suggestions, 1)
		assert.Equal(t, 3, strings.Count(suggestions[0], "You must do this."))
	})

	t.Run("excessive bold formatting is a suggestion", func(t *testing.T) {
		content := strings.Repeat("**bold** ", 41)
		_, suggestions := lintContent(content, t.TempDir())
		require.Len(t, suggestions, 1)
		assert.Contains(t, suggestions[0], "bold formatting")
	})

	t.Run("empty resource directories are suggestions", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, skill.ScriptsDir), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, skill.ReferencesDir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.ReferencesDir, "guide.md"), []byte("# G"), 0o644))

		_, suggestions := lintContent("Content.\n", dir)
		require.Len(t, suggestions, 1)
		assert.Contains(t, suggestions[0], "scripts/ directory is empty")
	})
}

func TestEmptyDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, emptyDir(dir))
	assert.False(t, emptyDir(filepath.Join(dir, "missing")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	assert.False(t, emptyDir(dir))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-ten-and-more", 10))
}
