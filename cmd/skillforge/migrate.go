package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/skill"
)

// deprecatedFields are frontmatter keys dropped by the current schema.
var deprecatedFields = []string{"license"}

var migrateCmd = &cobra.Command{
	Use:   "migrate <skill-dir>",
	Short: "Upgrade a skill definition to the current frontmatter schema",
	Long: `Rewrite the definition file's frontmatter to the current schema,
dropping deprecated fields. The original file is backed up next to it and
a diff of the changes is printed. No-op when the skill is already current.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		skillDir := args[0]
		definitionPath := filepath.Join(skillDir, skill.DefinitionFileName)

		original, err := os.ReadFile(definitionPath)
		if err != nil {
			presenter.Error(err, fmt.Sprintf("%s not found", skill.DefinitionFileName))
			os.Exit(1)
		}

		migrated, changes, err := migrateContent(string(original))
		if err != nil {
			presenter.Error(err, "Failed to migrate skill definition")
			os.Exit(1)
		}

		if len(changes) == 0 {
			presenter.Success("No migration needed - skill is up to date!")
			return
		}

		backupPath := definitionPath + ".backup"
		if err := os.WriteFile(backupPath, original, 0o644); err != nil {
			presenter.Error(err, "Failed to write backup")
			os.Exit(1)
		}
		if err := os.WriteFile(definitionPath, []byte(migrated), 0o644); err != nil {
			presenter.Error(err, "Failed to write migrated definition")
			os.Exit(1)
		}

		presenter.Success("Migration complete!")
		presenter.Info(fmt.Sprintf("  Backup saved: %s", backupPath))
		presenter.Info("Changes made:")
		for _, change := range changes {
			presenter.Info(fmt.Sprintf("  - %s", change))
		}
		presenter.Separator()
		fmt.Print(udiff.Unified("a/"+skill.DefinitionFileName, "b/"+skill.DefinitionFileName, string(original), migrated))
	},
}

// migrateContent rewrites the frontmatter block without deprecated keys,
// preserving key order and the body untouched.
func migrateContent(content string) (string, []string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return "", nil, errors.New("definition file has no frontmatter block")
	}

	frontmatterEnd := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == -1 {
		return "", nil, errors.New("frontmatter block is not terminated")
	}

	block := strings.Join(lines[1:frontmatterEnd], "\n")

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return "", nil, errors.Wrap(err, "failed to decode frontmatter")
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return "", nil, errors.New("frontmatter is not a mapping")
	}

	var changes []string
	mapping := doc.Content[0]
	for _, field := range deprecatedFields {
		if removeMappingKey(mapping, field) {
			changes = append(changes, fmt.Sprintf("Removed deprecated %q field from frontmatter", field))
		}
	}
	if len(changes) == 0 {
		return content, nil, nil
	}

	encoded, err := yaml.Marshal(mapping)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to encode frontmatter")
	}

	body := strings.Join(lines[frontmatterEnd+1:], "\n")
	migrated := "---\n" + string(encoded) + "---\n" + body
	return migrated, changes, nil
}

// removeMappingKey deletes a key/value pair from a YAML mapping node.
func removeMappingKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return true
		}
	}
	return false
}
