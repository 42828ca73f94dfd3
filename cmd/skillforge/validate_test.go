package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/pkg/skill"
	"github.com/skillforge/skillforge/pkg/validator"
)

func writeValidSkill(t *testing.T, parent string) string {
	t.Helper()
	dir := filepath.Join(parent, "pdf-extractor")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := `---
name: pdf-extractor
description: Extracts text and tables from PDF files. Use for "extract pdf" requests.
---

# PDF Extractor

Read the input file and emit plain text.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DefinitionFileName), []byte(content), 0o644))
	return dir
}

func TestGetValidateConfigFromFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := getValidateConfigFromFlags(validateCmd)
		assert.False(t, config.Watch)
		assert.Equal(t, 500, config.DebounceTime)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		require.NoError(t, validateCmd.Flags().Set("watch", "true"))
		require.NoError(t, validateCmd.Flags().Set("debounce", "250"))
		defer func() {
			_ = validateCmd.Flags().Set("watch", "false")
			_ = validateCmd.Flags().Set("debounce", "500")
		}()

		config := getValidateConfigFromFlags(validateCmd)
		assert.True(t, config.Watch)
		assert.Equal(t, 250, config.DebounceTime)
	})

	t.Run("negative debounce keeps default", func(t *testing.T) {
		require.NoError(t, validateCmd.Flags().Set("debounce", "-1"))
		defer func() {
			_ = validateCmd.Flags().Set("debounce", "500")
		}()

		config := getValidateConfigFromFlags(validateCmd)
		assert.Equal(t, 500, config.DebounceTime)
	})
}

func TestRunValidation(t *testing.T) {
	t.Run("valid skill produces clean report", func(t *testing.T) {
		dir := writeValidSkill(t, t.TempDir())

		report, err := runValidation(context.Background(), dir)
		require.NoError(t, err)
		assert.True(t, report.IsValid())
		assert.Empty(t, report.Warnings)
	})

	t.Run("violations are reported not returned as errors", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "my-skill")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		content := "---\nname: other-name\ndescription: short\n---\n\nBody.\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DefinitionFileName), []byte(content), 0o644))

		report, err := runValidation(context.Background(), dir)
		require.NoError(t, err)
		assert.False(t, report.IsValid())

		var errorCodes []string
		for _, finding := range report.Errors {
			errorCodes = append(errorCodes, finding.Code)
		}
		assert.Contains(t, errorCodes, validator.CodeNameDirMismatch)
	})

	t.Run("unparseable definition is an error", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "broken-skill")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.DefinitionFileName), []byte("no frontmatter"), 0o644))

		_, err := runValidation(context.Background(), dir)
		require.Error(t, err)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := runValidation(context.Background(), filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})
}
