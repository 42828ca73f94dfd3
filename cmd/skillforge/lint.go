package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/skill"
)

// boldBudget is the number of bold spans past which the definition file
// reads as over-formatted.
const boldBudget = 40

var lintCmd = &cobra.Command{
	Use:   "lint <skill-dir>",
	Short: "Check a skill against best practices",
	Long: `Run advisory style checks on a skill directory: placeholder text,
non-imperative voice, excessive formatting, and empty resource directories.
Lint findings never block packaging; use validate for the blocking rule
set.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		skillDir := args[0]

		content, err := os.ReadFile(filepath.Join(skillDir, skill.DefinitionFileName))
		if err != nil {
			presenter.Error(err, fmt.Sprintf("%s not found", skill.DefinitionFileName))
			os.Exit(1)
		}

		issues, suggestions := lintContent(string(content), skillDir)

		presenter.Section(fmt.Sprintf("Linting: %s", skillDir))
		if len(issues) == 0 && len(suggestions) == 0 {
			presenter.Success("No issues found!")
			return
		}

		for _, issue := range issues {
			presenter.Warning(issue)
		}
		for _, suggestion := range suggestions {
			presenter.Info(fmt.Sprintf("  suggestion: %s", suggestion))
		}
	},
}

func lintContent(content, skillDir string) (issues, suggestions []string) {
	if count := strings.Count(content, "TODO"); count > 0 {
		issues = append(issues, fmt.Sprintf("Found %d TODO placeholder(s)", count))
	}

	var nonImperative []string
	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, prefix := range []string{"you should", "you can", "you must", "you will"} {
			if strings.HasPrefix(lower, prefix) {
				nonImperative = append(nonImperative, truncate(line, 60))
				break
			}
		}
	}
	if len(nonImperative) > 0 {
		sample := nonImperative
		if len(sample) > 3 {
			sample = sample[:3]
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Use imperative voice instead of 'you' language: %s", strings.Join(sample, "; ")))
	}

	if bold := strings.Count(content, "**") / 2; bold > boldBudget {
		suggestions = append(suggestions, fmt.Sprintf(
			"Lots of bold formatting (%d instances); consider reducing for readability", bold))
	}

	for _, dir := range []string{skill.ScriptsDir, skill.ReferencesDir, skill.AssetsDir} {
		if emptyDir(filepath.Join(skillDir, dir)) {
			suggestions = append(suggestions, fmt.Sprintf("%s/ directory is empty - consider removing it", dir))
		}
	}

	return issues, suggestions
}

func emptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) == 0
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
