package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateContent(t *testing.T) {
	t.Run("removes deprecated license field", func(t *testing.T) {
		content := "---\nname: my-skill\ndescription: desc\nlicense: MIT\n---\n\nBody text.\n"

		migrated, changes, err := migrateContent(content)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Contains(t, changes[0], `"license"`)

		assert.Equal(t, "---\nname: my-skill\ndescription: desc\n---\n\nBody text.\n", migrated)
	})

	t.Run("preserves key order and body", func(t *testing.T) {
		content := "---\nlicense: Apache-2.0\nname: my-skill\ndescription: desc\n---\n\n# Title\n\nUnchanged body with license mention.\n"

		migrated, changes, err := migrateContent(content)
		require.NoError(t, err)
		require.Len(t, changes, 1)

		assert.Equal(t, "---\nname: my-skill\ndescription: desc\n---\n\n# Title\n\nUnchanged body with license mention.\n", migrated)
	})

	t.Run("no-op when already current", func(t *testing.T) {
		content := "---\nname: my-skill\ndescription: desc\n---\n\nBody.\n"

		migrated, changes, err := migrateContent(content)
		require.NoError(t, err)
		assert.Empty(t, changes)
		assert.Equal(t, content, migrated)
	})

	t.Run("missing frontmatter", func(t *testing.T) {
		_, _, err := migrateContent("# Just a heading\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no frontmatter")
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		_, _, err := migrateContent("---\nname: my-skill\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not terminated")
	})

	t.Run("indented closing delimiter does not terminate", func(t *testing.T) {
		_, _, err := migrateContent("---\nname: my-skill\n  ---\nBody.\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not terminated")
	})

	t.Run("non-mapping frontmatter", func(t *testing.T) {
		_, _, err := migrateContent("---\n- just\n- a\n- list\n---\nBody.\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a mapping")
	})
}

func TestRemoveMappingKey(t *testing.T) {
	content := "---\nname: my-skill\nlicense: MIT\ndescription: desc\n---\nBody.\n"

	migrated, changes, err := migrateContent(content)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.NotContains(t, migrated, "license")
	assert.Contains(t, migrated, "name: my-skill")
	assert.Contains(t, migrated, "description: desc")
}
