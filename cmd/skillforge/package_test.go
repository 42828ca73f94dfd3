package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/pkg/packager"
	"github.com/skillforge/skillforge/pkg/skill"
)

func TestGetPackageConfigFromFlags(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		config := getPackageConfigFromFlags(packageCmd, []string{"skill-dir"})
		assert.Equal(t, ".", config.OutputDir)
	})

	t.Run("positional output dir", func(t *testing.T) {
		config := getPackageConfigFromFlags(packageCmd, []string{"skill-dir", "/tmp/out"})
		assert.Equal(t, "/tmp/out", config.OutputDir)
	})

	t.Run("flag wins over positional", func(t *testing.T) {
		require.NoError(t, packageCmd.Flags().Set("output-dir", "/tmp/flagged"))
		defer func() {
			_ = packageCmd.Flags().Set("output-dir", "")
		}()

		config := getPackageConfigFromFlags(packageCmd, []string{"skill-dir", "/tmp/out"})
		assert.Equal(t, "/tmp/flagged", config.OutputDir)
	})
}

func TestRunPackaging(t *testing.T) {
	t.Run("valid skill produces archive", func(t *testing.T) {
		dir := writeValidSkill(t, t.TempDir())
		outputDir := t.TempDir()

		archivePath, err := runPackaging(context.Background(), dir, outputDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outputDir, "pdf-extractor"+packager.Extension), archivePath)

		_, err = os.Stat(archivePath)
		assert.NoError(t, err)
	})

	t.Run("invalid skill aborts packaging", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		content := "---\nname: my-skill\ndescription: A long enough description used for trigger testing here.\n---\n\nTODO: write me\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DefinitionFileName), []byte(content), 0o644))
		outputDir := t.TempDir()

		_, err := runPackaging(context.Background(), dir, outputDir)
		require.Error(t, err)

		var pkgErr *packager.PackageError
		require.ErrorAs(t, err, &pkgErr)
		assert.Equal(t, packager.CodeValidationFailed, pkgErr.Code)

		_, statErr := os.Stat(filepath.Join(outputDir, "my-skill"+packager.Extension))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unparseable skill fails before validation", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "broken")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DefinitionFileName), []byte("not a skill"), 0o644))

		_, err := runPackaging(context.Background(), dir, t.TempDir())
		require.Error(t, err)
	})
}
